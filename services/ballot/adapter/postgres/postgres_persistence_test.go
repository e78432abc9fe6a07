// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package postgres

import (
	"context"
	"fmt"
	"github.com/lib/pq"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/testkit"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

// set to a postgres url of a disposable database to run these tests
const postgresUrlEnv = "BALLOT_TEST_POSTGRES_URL"

func TestPostgresPersistence(t *testing.T) {
	url := os.Getenv(postgresUrlEnv)
	if url == "" {
		t.Skipf("%s is not set, skipping postgres persistence tests", postgresUrlEnv)
	}

	run := 0
	testkit.RunPersistenceSuite(t, func(t *testing.T) (adapter.KeyValuePersistence, func()) {
		ctx := context.Background()
		p, err := NewKeyValuePersistence(ctx, url, log.DefaultTestingLogger(t), metric.NewRegistry())
		require.NoError(t, err)
		run++
		return &prefixedNamespaces{p, fmt.Sprintf("run-%d-%d-", time.Now().UnixNano(), run)}, func() { _ = p.Close() }
	})
}

func TestIsConflict(t *testing.T) {
	require.True(t, isConflict(&pq.Error{Code: "23505"}))
	require.True(t, isConflict(errors.Wrap(&pq.Error{Code: "23505"}, "wrapped")))
	require.False(t, isConflict(&pq.Error{Code: "23503"}))
	require.False(t, isConflict(errors.New("other")))
}

// the database outlives a test run, namespaces are isolated per run
type prefixedNamespaces struct {
	adapter.KeyValuePersistence
	prefix string
}

func (p *prefixedNamespaces) CreateNamespace(ctx context.Context, namespace string) error {
	return p.KeyValuePersistence.CreateNamespace(ctx, p.prefix+namespace)
}

func (p *prefixedNamespaces) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	return p.KeyValuePersistence.HasNamespace(ctx, p.prefix+namespace)
}

func (p *prefixedNamespaces) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	return p.KeyValuePersistence.Get(ctx, p.prefix+namespace, key)
}

func (p *prefixedNamespaces) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	return p.KeyValuePersistence.Write(ctx, p.prefix+namespace, records)
}
