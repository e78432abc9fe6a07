// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package events

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

var LogTag = log.Service("vote-events")

type Publisher interface {
	Publish(ctx context.Context, event *VoteCastEvent) error
}

type voteCastHandler struct {
	publishers []Publisher
	logger     log.Logger
	clock      func() time.Time
}

// Fans every committed vote out to all publishers. A failing publisher does not stop the others.
func NewVoteCastHandler(parentLogger log.Logger, publishers ...Publisher) ballot.VoteCastHandler {
	return &voteCastHandler{
		publishers: publishers,
		logger:     parentLogger.WithTags(LogTag),
		clock:      time.Now,
	}
}

func (h *voteCastHandler) HandleVoteCast(ctx context.Context, receipt *ballot.VoteReceipt) error {
	event := NewVoteCastEvent(receipt, h.clock())

	var firstErr error
	failures := 0
	for _, publisher := range h.publishers {
		if err := publisher.Publish(ctx, event); err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return errors.Wrapf(firstErr, "%d of %d publishers failed to publish vote %s", failures, len(h.publishers), receipt)
	}
	return nil
}
