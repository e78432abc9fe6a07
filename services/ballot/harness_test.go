// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/memory"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

type harness struct {
	store       *Service
	persistence *memory.InMemoryKeyValuePersistence
	metrics     metric.Registry
}

func newHarness(logger log.Logger) *harness {
	registry := metric.NewRegistry()
	persistence := memory.NewKeyValuePersistence(registry)
	return &harness{
		store:       NewBallotStore(config.ForTests(), persistence, logger, registry),
		persistence: persistence,
		metrics:     registry,
	}
}

func newInitializedHarness(t testing.TB, ctx context.Context, logger log.Logger) *harness {
	h := newHarness(logger)
	require.NoError(t, h.store.Initialize(ctx))
	return h
}

func (h *harness) rawValue(t testing.TB, ctx context.Context, key string) ([]byte, bool) {
	value, found, err := h.persistence.Get(ctx, config.ProjectDictionaryNamespace, key)
	require.NoError(t, err)
	return value, found
}

func (h *harness) gauge(name string) int64 {
	return h.metrics.Get(name).(*metric.Gauge).Value()
}

type recordingHandler struct {
	sync.Mutex
	receipts []*VoteReceipt
	err      error
}

func (r *recordingHandler) HandleVoteCast(ctx context.Context, receipt *VoteReceipt) error {
	r.Lock()
	defer r.Unlock()
	r.receipts = append(r.receipts, receipt)
	return r.err
}

func (r *recordingHandler) received() []*VoteReceipt {
	r.Lock()
	defer r.Unlock()
	return append([]*VoteReceipt{}, r.receipts...)
}

// delegates to a real persistence and fails every Write
type failingWrites struct {
	adapter.KeyValuePersistence
	err error
}

func (f *failingWrites) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	return f.err
}
