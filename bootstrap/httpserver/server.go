// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

const maxRequestBodyBytes = 64 * 1024

var LogTag = log.String("adapter", "http-server")

type httpErr struct {
	code     int
	logField *log.Field
	message  string
}

type BallotStore interface {
	RegisterProject(ctx context.Context, projectId string) error
	CastVote(ctx context.Context, projectId string, voterIdentity string) (*ballot.VoteReceipt, error)
	GetTotalVoteCount(ctx context.Context, projectId string) (uint32, error)
	GetVoteReceipt(ctx context.Context, projectId string, index uint32) (*ballot.VoteReceipt, error)
}

type metrics struct {
	requests       *metric.Gauge
	rejectedVotes  *metric.Gauge
	rateLimited    *metric.Gauge
	replayedVotes  *metric.Gauge
	requestLatency *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		requests:       m.NewGauge("HttpServer.Requests.Count"),
		rejectedVotes:  m.NewGauge("HttpServer.Vote.Rejected.Count"),
		rateLimited:    m.NewGauge("HttpServer.Vote.RateLimited.Count"),
		replayedVotes:  m.NewGauge("HttpServer.Vote.Replayed.Count"),
		requestLatency: m.NewLatency("HttpServer.Request.ProcessingTime.Millis", 30*time.Second),
	}
}

type HttpServer struct {
	govnr.TreeSupervisor
	httpServer     *http.Server
	logger         log.Logger
	store          BallotStore
	metricRegistry metric.Registry
	metrics        *metrics
	config         config.HttpServerConfig
	voteFeed       http.Handler
	voteLimiter    *rate.Limiter
	acceptedVotes  *acceptedVotePool
	clock          func() time.Time
	cancel         context.CancelFunc

	port int
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// voteFeed may be nil, the feed route is then not served
func NewHttpServer(parent context.Context, cfg config.HttpServerConfig, logger log.Logger, store BallotStore, metricRegistry metric.Registry, voteFeed http.Handler) *HttpServer {
	ctx, cancel := context.WithCancel(parent)
	server := &HttpServer{
		logger:         logger.WithTags(LogTag),
		store:          store,
		metricRegistry: metricRegistry,
		metrics:        newMetrics(metricRegistry),
		config:         cfg,
		voteFeed:       voteFeed,
		acceptedVotes:  newAcceptedVotePool(cfg.VoteRequestExpirationWindow(), metricRegistry),
		clock:          time.Now,
		cancel:         cancel,
	}

	if limit := cfg.HttpVoteRateLimit(); limit > 0 {
		server.voteLimiter = rate.NewLimiter(rate.Limit(limit), int(limit))
	}

	if listener, err := server.listen(server.config.HttpAddress()); err != nil {
		panic(fmt.Sprintf("failed to start http server: %s", err.Error()))
	} else {
		server.port = listener.Addr().(*net.TCPAddr).Port
		server.httpServer = &http.Server{
			Handler: server.createRouter(),
		}

		// We prefer not to use `HttpServer.ListenAndServe` because we want to block until the socket is listening or exit immediately
		server.Supervise(govnr.Forever(ctx, "http server", logfields.GovnrErrorer(server.logger), func() {
			err := server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)})
			if err != nil && err != http.ErrServerClosed {
				server.logger.Error("http server stopped serving", log.Error(err))
			}
			<-ctx.Done()
		}))
	}

	server.logger.Info("started http server", log.String("address", server.config.HttpAddress()), log.Int("port", server.port))

	return server
}

func (s *HttpServer) Port() int {
	return s.port
}

func (s *HttpServer) listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

func (s *HttpServer) GracefulShutdown(shutdownContext context.Context) {
	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
	s.cancel()
}

func (s *HttpServer) createRouter() http.Handler {
	router := http.NewServeMux()
	router.Handle(jsonapi.RegisterProjectPath, http.HandlerFunc(wrapHandlerWithCORS(s.instrumented(s.registerProjectHandler))))
	router.Handle(jsonapi.VotePath, http.HandlerFunc(wrapHandlerWithCORS(s.instrumented(s.voteHandler))))
	router.Handle(jsonapi.GetTotalVoteCountPath, http.HandlerFunc(wrapHandlerWithCORS(s.instrumented(s.getTotalVoteCountHandler))))
	router.Handle(jsonapi.GetVoteReceiptPath, http.HandlerFunc(wrapHandlerWithCORS(s.instrumented(s.getVoteReceiptHandler))))
	if s.voteFeed != nil {
		router.Handle(jsonapi.VoteFeedPath, s.voteFeed)
	}
	router.Handle("/metrics", http.HandlerFunc(wrapHandlerWithCORS(s.dumpMetrics)))
	router.Handle("/status", http.HandlerFunc(wrapHandlerWithCORS(s.getStatus)))
	router.Handle("/robots.txt", http.HandlerFunc(s.robots))
	router.Handle("/debug/logs/filter-on", http.HandlerFunc(s.filterOn))
	router.Handle("/debug/logs/filter-off", http.HandlerFunc(s.filterOff))

	if s.config.Profiling() {
		registerPprof(router)
	}

	return router
}

func (s *HttpServer) instrumented(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer s.metrics.requestLatency.RecordSince(start)
		s.metrics.requests.Inc()
		f(w, r)
	}
}

func readInput(w http.ResponseWriter, r *http.Request) ([]byte, *httpErr) {
	if r.Method != http.MethodPost {
		return nil, &httpErr{http.StatusMethodNotAllowed, log.String("method", r.Method), "only POST is supported"}
	}

	if r.Body == nil {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}

	bytes, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, &httpErr{http.StatusBadRequest, log.Error(err), "http request body could not be read"}
	}
	if len(bytes) == 0 {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}
	return bytes, nil
}

func decodeInput(bytes []byte, into interface{}) *httpErr {
	if err := json.Unmarshal(bytes, into); err != nil {
		return &httpErr{http.StatusBadRequest, log.Error(err), "http request is not valid json"}
	}
	return nil
}

func translateErrorToHttpCode(err error) int {
	switch errors.Cause(err) {
	case nil:
		return http.StatusOK
	case ballot.ErrInvalidProjectId, ballot.ErrInvalidVoter:
		return http.StatusBadRequest
	case ballot.ErrDuplicateProject, ballot.ErrVoteCountOverflow:
		return http.StatusConflict
	case ballot.ErrUnknownProject, ballot.ErrReceiptNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *HttpServer) writeJsonResponse(w http.ResponseWriter, response interface{}) {
	bytes, err := json.Marshal(response)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", jsonapi.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(bytes); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *HttpServer) writeStoreErrorAndLog(w http.ResponseWriter, err error) {
	code := translateErrorToHttpCode(err)
	w.Header().Set(jsonapi.ErrorDetailsHeader, err.Error())
	if code == http.StatusInternalServerError {
		s.logger.Error("ballot store failed", log.Error(err))
		s.writeErrorResponse(w, code, "internal error")
		return
	}
	s.writeErrorResponseAndLog(w, &httpErr{code, log.Error(err), errors.Cause(err).Error()})
}

func (s *HttpServer) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message)
	} else {
		s.logger.Info(m.message, m.logField)
	}
	s.writeErrorResponse(w, m.code, m.message)
}

func (s *HttpServer) writeErrorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	_, err := w.Write([]byte(message))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func registerPprof(router *http.ServeMux) {
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			f(w, r)
		}
	}
}
