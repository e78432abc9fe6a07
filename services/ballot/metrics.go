// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"time"
)

type metrics struct {
	registeredProjects *metric.Gauge
	votesCast          *metric.Gauge
	slotsConsumed      *metric.Gauge
	failed             *metric.Gauge
	castVoteTime       *metric.Histogram
	castVoteRate       *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		registeredProjects: m.NewGauge("BallotStore.RegisterProject.Count"),
		votesCast:          m.NewGauge("BallotStore.CastVote.Count"),
		slotsConsumed:      m.NewGauge("BallotStore.CastVote.SlotConsumed.Count"),
		failed:             m.NewGauge("BallotStore.Failed.Count"),
		castVoteTime:       m.NewLatency("BallotStore.CastVote.ProcessingTime.Millis", 10*time.Second),
		castVoteRate:       m.NewRate("BallotStore.CastVote.Rate"),
	}
}
