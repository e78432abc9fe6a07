// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/events"
	"github.com/orbs-network/orbs-ballot-ledger/services/events/adapter/amqp"
	"github.com/orbs-network/orbs-ballot-ledger/services/events/adapter/websocket"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type NodeLogic struct {
	store          *ballot.Service
	voteFeed       *websocket.Hub
	amqpPublisher  *amqp.Publisher
	systemReporter *metric.SystemReporter
	ntpReporter    *metric.NtpReporter
}

func NewNodeLogic(ctx context.Context, nodeConfig config.NodeConfig, persistence adapter.KeyValuePersistence, logger log.Logger, metricRegistry metric.Registry) (*NodeLogic, error) {
	store := ballot.NewBallotStore(nodeConfig, persistence, logger, metricRegistry)

	if err := store.Initialize(ctx); errors.Cause(err) == ballot.ErrAlreadyInitialized {
		logger.Info("ballot store already initialized", log.String("namespace", nodeConfig.BallotNamespace()))
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to initialize ballot store")
	}

	logic := &NodeLogic{
		store:    store,
		voteFeed: websocket.NewHub(ctx, logger, metricRegistry),
	}

	publishers := []events.Publisher{logic.voteFeed}
	if nodeConfig.EventsAmqpUrl() != "" {
		publisher, err := amqp.NewPublisher(ctx, nodeConfig, amqp.DialPolicy{Attempts: amqp.DefaultDialAttempts, Backoff: amqp.DefaultDialBackoff}, logger, metricRegistry)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect vote event publisher")
		}
		logic.amqpPublisher = publisher
		publishers = append(publishers, publisher)
	}
	store.RegisterVoteCastHandler(events.NewVoteCastHandler(logger, publishers...))

	metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger)
	if nodeConfig.SystemMetricsEnabled() {
		logic.systemReporter = metric.NewSystemReporter(ctx, metricRegistry, logger, nodeConfig.MetricsReportInterval())
	}
	if nodeConfig.NtpServerAddress() != "" {
		logic.ntpReporter = metric.NewNtpReporter(ctx, metricRegistry, logger, nodeConfig.NtpServerAddress())
	}

	return logic, nil
}

func (n *NodeLogic) BallotStore() *ballot.Service {
	return n.store
}

func (n *NodeLogic) VoteFeed() *websocket.Hub {
	return n.voteFeed
}

func (n *NodeLogic) GracefulShutdown(shutdownContext context.Context) {
	if n.amqpPublisher != nil {
		n.amqpPublisher.GracefulShutdown(shutdownContext)
	}
}
