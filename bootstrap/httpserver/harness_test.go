// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/encoding"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/signature"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/memory"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type harness struct {
	server   *HttpServer
	router   http.Handler
	store    *ballot.Service
	registry metric.Registry
	now      time.Time
}

func newHarness(ctx context.Context, t testing.TB, logger log.Logger, cfg config.HttpServerConfig) *harness {
	registry := metric.NewRegistry()
	store := ballot.NewBallotStore(config.ForTests(), memory.NewKeyValuePersistence(registry), logger, registry)
	require.NoError(t, store.Initialize(ctx))

	server := NewHttpServer(ctx, cfg, logger, store, registry, nil)
	now := time.Unix(1570000000, 0)
	server.clock = func() time.Time { return now }

	return &harness{
		server:   server,
		router:   server.createRouter(),
		store:    store,
		registry: registry,
		now:      now,
	}
}

func testServerConfig() config.HttpServerConfig {
	return NewServerConfig("127.0.0.1:0", false, 0, 5*time.Minute)
}

func (h *harness) shutdown(ctx context.Context) {
	h.server.GracefulShutdown(ctx)
}

func (h *harness) post(path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) postJson(t testing.TB, path string, request interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(request)
	require.NoError(t, err)
	return h.post(path, body, nil)
}

func (h *harness) vote(t testing.TB, keyPair *keys.Ed25519KeyPair, projectId string, timestamp time.Time) *httptest.ResponseRecorder {
	body, err := json.Marshal(&jsonapi.VoteRequest{ProjectId: projectId, Timestamp: uint64(timestamp.UnixNano())})
	require.NoError(t, err)
	return h.post(jsonapi.VotePath, body, signedHeaders(t, keyPair, body))
}

func signedHeaders(t testing.TB, keyPair *keys.Ed25519KeyPair, body []byte) map[string]string {
	sig, err := signature.SignEd25519(keyPair.PrivateKey(), body)
	require.NoError(t, err)
	return map[string]string{
		jsonapi.SignerPublicKeyHeader: encoding.EncodeHex(keyPair.PublicKey()),
		jsonapi.SignatureHeader:       encoding.EncodeHex(sig),
	}
}

func decodeResponse(t testing.TB, rec *httptest.ResponseRecorder, into interface{}) {
	require.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}
