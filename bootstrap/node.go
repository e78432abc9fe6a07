// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-ballot-ledger/bootstrap/httpserver"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("node")

type Node struct {
	govnr.TreeSupervisor
	logger         log.Logger
	metricRegistry metric.Registry
	httpServer     *httpserver.HttpServer
	logic          *NodeLogic
	persistence    adapter.KeyValuePersistence
	ctxCancel      context.CancelFunc
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) (*Node, error) {
	ctx, ctxCancel := context.WithCancel(context.Background())
	nodeLogger := logger.WithTags(LogTag)
	metricRegistry := metric.NewRegistry()
	metricRegistry.NewText("Version.Semantic", config.GetVersion().Semantic)
	metricRegistry.NewText("Version.Commit", config.GetVersion().Commit)

	persistence, err := NewPersistence(ctx, nodeConfig, nodeLogger, metricRegistry)
	if err != nil {
		ctxCancel()
		return nil, errors.Wrap(err, "failed to open ballot persistence")
	}

	logic, err := NewNodeLogic(ctx, nodeConfig, persistence, nodeLogger, metricRegistry)
	if err != nil {
		ctxCancel()
		_ = persistence.Close()
		return nil, err
	}

	n := &Node{
		logger:         nodeLogger,
		metricRegistry: metricRegistry,
		logic:          logic,
		persistence:    persistence,
		ctxCancel:      ctxCancel,
		httpServer:     httpserver.NewHttpServer(ctx, nodeConfig, nodeLogger, logic.BallotStore(), metricRegistry, logic.VoteFeed()),
	}

	n.Supervise(logic.VoteFeed())
	n.Supervise(n.httpServer)

	n.logger.Info("ballot node started", log.String("persistence", nodeConfig.BallotPersistence()))
	return n, nil
}

func (n *Node) HttpPort() int {
	return n.httpServer.Port()
}

func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.logger.Info("shutting down")
	n.httpServer.GracefulShutdown(shutdownContext)
	n.logic.GracefulShutdown(shutdownContext)
	n.ctxCancel()

	if err := n.persistence.Close(); err != nil {
		n.logger.Error("failed to close ballot persistence", log.Error(err))
	}
}
