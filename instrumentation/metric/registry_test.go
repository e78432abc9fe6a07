// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestInMemoryRegistry_ExportAll(t *testing.T) {
	registry := NewRegistry()
	gauge := registry.NewGauge("hello")
	gauge.Add(1)

	gaugeValue := registry.ExportAll()["hello"].(gaugeExport)
	require.EqualValues(t, gaugeValue.Value, 1)
}

func TestInMemoryRegistry_SameNameReturnsSameMetric(t *testing.T) {
	registry := NewRegistry()
	first := registry.NewGauge("BallotStore.CastVote.Count")
	second := registry.NewGauge("BallotStore.CastVote.Count")

	first.Inc()

	require.True(t, first == second, "registering the same name twice should return the existing gauge")
	require.EqualValues(t, 1, second.Value())
}

func TestInMemoryRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	registry.NewText("Version.Semantic", "v1.0.0")
	registry.NewLatency("Latency", time.Second)

	require.Equal(t, "v1.0.0", registry.Get("Version.Semantic").Export().(textExport).Value)
	require.Nil(t, registry.Get("does-not-exist"))
}

func TestInMemoryRegistry_String(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("a").Update(3)
	registry.NewText("b", "x")

	require.Equal(t, "metric a: 3\nmetric b: x\n", registry.String())
}
