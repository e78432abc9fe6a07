// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package leveldb

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/testkit"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
)

func TestLevelDbPersistence(t *testing.T) {
	testkit.RunPersistenceSuite(t, func(t *testing.T) (adapter.KeyValuePersistence, func()) {
		p, err := NewInMemoryStorageKeyValuePersistence(log.DefaultTestingLogger(t), metric.NewRegistry())
		require.NoError(t, err)
		return p, func() { _ = p.Close() }
	})
}

func TestLevelDbPersistence_SurvivesReopen(t *testing.T) {
	dir, err := ioutil.TempDir("", "ballot-leveldb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	ctx := context.Background()

	p, err := NewKeyValuePersistence(dir, log.DefaultTestingLogger(t), metric.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, p.CreateNamespace(ctx, "project_dictionary"))
	require.NoError(t, p.Write(ctx, "project_dictionary", []*adapter.Record{{Key: "p1", Value: []byte{0, 0, 0, 1}}}))
	require.NoError(t, p.Close())

	reopened, err := NewKeyValuePersistence(dir, log.DefaultTestingLogger(t), metric.NewRegistry())
	require.NoError(t, err)
	defer reopened.Close()

	exists, err := reopened.HasNamespace(ctx, "project_dictionary")
	require.NoError(t, err)
	require.True(t, exists)

	value, found, err := reopened.Get(ctx, "project_dictionary", "p1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte{0, 0, 0, 1}, value)
}

func TestRecordKey_DoesNotCollideAcrossNamespaces(t *testing.T) {
	require.NotEqual(t, recordKey("ab", "c"), recordKey("a", "bc"))
	require.NotEqual(t, recordKey("a", ""), namespaceKey("a"))
}
