// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package memory

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/testkit"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestInMemoryPersistence(t *testing.T) {
	testkit.RunPersistenceSuite(t, func(t *testing.T) (adapter.KeyValuePersistence, func()) {
		p := NewKeyValuePersistence(metric.NewRegistry())
		return p, func() { _ = p.Close() }
	})
}

func TestInMemoryPersistence_ReportsSize(t *testing.T) {
	registry := metric.NewRegistry()
	p := NewKeyValuePersistence(registry)
	ctx := context.Background()

	require.NoError(t, p.CreateNamespace(ctx, "ns"))
	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{{Key: "a", Value: []byte{1}}, {Key: "b", Value: []byte{2}}}))

	require.EqualValues(t, 2, p.metrics.numberOfKeys.Value())
	require.EqualValues(t, 1, p.metrics.numberOfNamespaces.Value())
}

func TestInMemoryPersistence_ReturnedValuesAreCopies(t *testing.T) {
	p := NewKeyValuePersistence(metric.NewRegistry())
	ctx := context.Background()
	require.NoError(t, p.CreateNamespace(ctx, "ns"))

	written := []byte{1, 2, 3}
	require.NoError(t, p.Write(ctx, "ns", []*adapter.Record{{Key: "a", Value: written}}))
	written[0] = 9

	value, _, err := p.Get(ctx, "ns", "a")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, value, "mutating the written slice changed the stored value")

	value[1] = 9
	again, _, _ := p.Get(ctx, "ns", "a")
	require.Equal(t, []byte{1, 2, 3}, again, "mutating a read slice changed the stored value")
}

func TestInMemoryPersistence_Dump(t *testing.T) {
	p := NewKeyValuePersistence(metric.NewRegistry())
	ctx := context.Background()
	require.NoError(t, p.CreateNamespace(ctx, "project_dictionary"))
	require.NoError(t, p.Write(ctx, "project_dictionary", []*adapter.Record{
		{Key: "p1:0", Value: []byte("ab")},
		{Key: "p1", Value: []byte{0, 0, 0, 1}},
	}))

	require.Equal(t, "{project_dictionary:{p1:00000001,p1:0:6162,},}", p.Dump())
}
