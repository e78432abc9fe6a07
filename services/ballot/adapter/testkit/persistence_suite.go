// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package testkit

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

// returns a fresh, empty persistence and a function releasing it
type PersistenceFactory func(t *testing.T) (adapter.KeyValuePersistence, func())

func RunPersistenceSuite(t *testing.T, factory PersistenceFactory) {
	tests := []struct {
		name string
		test func(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence)
	}{
		{"CreateNamespace_Once", testCreateNamespaceOnce},
		{"HasNamespace_Unknown", testHasNamespaceUnknown},
		{"Get_MissingNamespace", testGetMissingNamespace},
		{"Get_MissingKey", testGetMissingKey},
		{"Write_ThenGet", testWriteThenGet},
		{"Write_Overwrites", testWriteOverwrites},
		{"Write_EmptyValueIsFound", testWriteEmptyValueIsFound},
		{"Write_MissingNamespace", testWriteMissingNamespace},
		{"Namespaces_AreIsolated", testNamespacesAreIsolated},
		{"Keys_WithSeparators", testKeysWithSeparators},
		{"Write_Concurrently", testWriteConcurrently},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, release := factory(t)
			defer release()
			tt.test(t, context.Background(), p)
		})
	}
}

func testCreateNamespaceOnce(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	exists, err := p.HasNamespace(ctx, "ns")
	require.NoError(t, err)
	require.True(t, exists, "namespace should exist after creation")

	err = p.CreateNamespace(ctx, "ns")
	require.Error(t, err, "creating a namespace twice should fail")
	require.Equal(t, adapter.ErrNamespaceExists, errors.Cause(err))
}

func testHasNamespaceUnknown(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	exists, err := p.HasNamespace(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, exists)
}

func testGetMissingNamespace(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	_, found, err := p.Get(ctx, "unknown", "k")
	require.Error(t, err)
	require.Equal(t, adapter.ErrNamespaceNotFound, errors.Cause(err))
	require.False(t, found)
}

func testGetMissingKey(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	_, found, err := p.Get(ctx, "ns", "k")
	require.NoError(t, err)
	require.False(t, found, "key was never written")
}

func testWriteThenGet(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{
		{Key: "a", Value: []byte{0x01, 0x02}},
		{Key: "b", Value: []byte("bee")},
	}))

	requireValue(t, ctx, p, "ns", "a", []byte{0x01, 0x02})
	requireValue(t, ctx, p, "ns", "b", []byte("bee"))
}

func testWriteOverwrites(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{{Key: "a", Value: []byte("first")}}))
	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{{Key: "a", Value: []byte("second")}}))

	requireValue(t, ctx, p, "ns", "a", []byte("second"))
}

func testWriteEmptyValueIsFound(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))
	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{{Key: "a", Value: []byte{}}}))

	value, found, err := p.Get(ctx, "ns", "a")
	require.NoError(t, err)
	require.True(t, found, "an entry holding no value still exists")
	require.Len(t, value, 0)
}

func testWriteMissingNamespace(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	err := p.Write(ctx, "unknown", []*adapter.Record{{Key: "a", Value: []byte("x")}})
	require.Error(t, err)
	require.Equal(t, adapter.ErrNamespaceNotFound, errors.Cause(err))

	exists, err := p.HasNamespace(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, exists, "a failed write must not create the namespace")
}

func testNamespacesAreIsolated(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns1"))
	require.NoError(t, p.CreateNamespace(ctx, "ns2"))

	require.NoError(t, p.Write(ctx, "ns1", []*adapter.Record{{Key: "k", Value: []byte("one")}}))

	requireValue(t, ctx, p, "ns1", "k", []byte("one"))
	_, found, err := p.Get(ctx, "ns2", "k")
	require.NoError(t, err)
	require.False(t, found, "key written to ns1 leaked into ns2")
}

func testKeysWithSeparators(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{
		{Key: "p1", Value: []byte("count")},
		{Key: "p1:0", Value: []byte("receipt")},
		{Key: "with/slash", Value: []byte("slash")},
	}))

	requireValue(t, ctx, p, "ns", "p1", []byte("count"))
	requireValue(t, ctx, p, "ns", "p1:0", []byte("receipt"))
	requireValue(t, ctx, p, "ns", "with/slash", []byte("slash"))
}

func testWriteConcurrently(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence) {
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- p.Write(ctx, "ns", []*adapter.Record{{Key: fmt.Sprintf("k%d", i), Value: []byte{byte(i)}}})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for i := 0; i < workers; i++ {
		requireValue(t, ctx, p, "ns", fmt.Sprintf("k%d", i), []byte{byte(i)})
	}
}

func requireValue(t *testing.T, ctx context.Context, p adapter.KeyValuePersistence, namespace string, key string, expected []byte) {
	value, found, err := p.Get(ctx, namespace, key)
	require.NoError(t, err)
	require.True(t, found, "key %s should be found in %s", key, namespace)
	require.Equal(t, expected, value)
}
