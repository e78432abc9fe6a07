// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"encoding/json"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

func (s *HttpServer) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *HttpServer) filterOn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, f := range s.logger.Filters() {
		if c, ok := f.(log.ConditionalFilter); ok {
			c.On()
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("filter on"))
}

func (s *HttpServer) filterOff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, f := range s.logger.Filters() {
		if c, ok := f.(log.ConditionalFilter); ok {
			c.Off()
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("filter off"))
}

func (s *HttpServer) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", jsonapi.ContentType)
	bytes, _ := json.Marshal(s.metricRegistry.ExportAll())
	_, err := w.Write(bytes)
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *HttpServer) registerProjectHandler(w http.ResponseWriter, r *http.Request) {
	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.RegisterProjectRequest{}
	if e := decodeInput(bytes, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	s.logger.Info("http server received register-project", logfields.ProjectId(request.ProjectId))
	if err := s.store.RegisterProject(r.Context(), request.ProjectId); err != nil {
		s.writeStoreErrorAndLog(w, err)
		return
	}

	s.writeJsonResponse(w, &jsonapi.RegisterProjectResponse{ProjectId: request.ProjectId})
}

func (s *HttpServer) voteHandler(w http.ResponseWriter, r *http.Request) {
	if s.voteLimiter != nil && !s.voteLimiter.Allow() {
		s.metrics.rateLimited.Inc()
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusServiceUnavailable, nil, "too many vote requests, try again later"})
		return
	}

	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	signed, e := verifySignedRequest(r, bytes)
	if e != nil {
		s.metrics.rejectedVotes.Inc()
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.VoteRequest{}
	if e := decodeInput(bytes, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	now := s.clock()
	if e := verifyNotExpired(request.Timestamp, now, s.config.VoteRequestExpirationWindow()); e != nil {
		s.metrics.rejectedVotes.Inc()
		s.writeErrorResponseAndLog(w, e)
		return
	}

	voter := signed.voter
	if !s.acceptedVotes.addIfAbsent(signed.digest, time.Unix(0, int64(request.Timestamp)), now) {
		s.metrics.replayedVotes.Inc()
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusConflict, logfields.Voter(voter), "signed vote request was already accepted"})
		return
	}

	s.logger.Info("http server received vote", logfields.ProjectId(request.ProjectId), logfields.Voter(voter))
	receipt, err := s.store.CastVote(r.Context(), request.ProjectId, voter)
	if err != nil {
		s.writeStoreErrorAndLog(w, err)
		return
	}

	response := &jsonapi.VoteResponse{ProjectId: request.ProjectId, Voter: voter}
	if receipt != nil {
		response.VoteIndex = receipt.Index
		response.Recorded = true
	}
	s.writeJsonResponse(w, response)
}

func (s *HttpServer) getTotalVoteCountHandler(w http.ResponseWriter, r *http.Request) {
	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.GetTotalVoteCountRequest{}
	if e := decodeInput(bytes, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	count, err := s.store.GetTotalVoteCount(r.Context(), request.ProjectId)
	if err != nil {
		s.writeStoreErrorAndLog(w, err)
		return
	}

	s.writeJsonResponse(w, &jsonapi.GetTotalVoteCountResponse{ProjectId: request.ProjectId, VoteCount: count})
}

func (s *HttpServer) getVoteReceiptHandler(w http.ResponseWriter, r *http.Request) {
	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.GetVoteReceiptRequest{}
	if e := decodeInput(bytes, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	receipt, err := s.store.GetVoteReceipt(r.Context(), request.ProjectId, request.VoteIndex)
	if err != nil {
		s.writeStoreErrorAndLog(w, err)
		return
	}

	s.writeJsonResponse(w, &jsonapi.GetVoteReceiptResponse{ProjectId: receipt.ProjectId, VoteIndex: receipt.Index, Voter: receipt.Voter})
}
