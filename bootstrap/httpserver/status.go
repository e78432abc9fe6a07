// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package httpserver

import (
	"encoding/json"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
	"net/http"
)

type StatusResponse struct {
	Uptime int64

	Ballot struct {
		RegisteredProjects int64
		VotesCast          int64
		SlotsConsumed      int64
		Failed             int64
	}

	HttpServer struct {
		Requests      int64
		RejectedVotes int64
		RateLimited   int64
	}

	Version config.Version
}

func (s *HttpServer) getStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	metrics := s.metricRegistry
	status := StatusResponse{
		Uptime:  metricGetGaugeValue(s.logger, metrics, "Runtime.Uptime.Seconds"),
		Version: config.GetVersion(),
	}
	status.Ballot.RegisteredProjects = metricGetGaugeValue(s.logger, metrics, "BallotStore.RegisterProject.Count")
	status.Ballot.VotesCast = metricGetGaugeValue(s.logger, metrics, "BallotStore.CastVote.Count")
	status.Ballot.SlotsConsumed = metricGetGaugeValue(s.logger, metrics, "BallotStore.CastVote.SlotConsumed.Count")
	status.Ballot.Failed = metricGetGaugeValue(s.logger, metrics, "BallotStore.Failed.Count")
	status.HttpServer.Requests = metricGetGaugeValue(s.logger, metrics, "HttpServer.Requests.Count")
	status.HttpServer.RejectedVotes = metricGetGaugeValue(s.logger, metrics, "HttpServer.Vote.Rejected.Count")
	status.HttpServer.RateLimited = metricGetGaugeValue(s.logger, metrics, "HttpServer.Vote.RateLimited.Count")

	data, _ := json.MarshalIndent(status, "", "  ")

	_, err := w.Write(data)
	if err != nil {
		s.logger.Info("error writing status response", log.Error(err))
	}
}

// unregistered metrics read as zero, system metrics are optional
func metricGetGaugeValue(logger log.Logger, metrics metric.Registry, name string) (value int64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("could not retrieve metric", log.String("metric", name))
		}
	}()

	m := metrics.Get(name)
	if m == nil {
		return 0
	}
	rows := m.Export().LogRow()
	value = rows[len(rows)-1].Int
	return value
}
