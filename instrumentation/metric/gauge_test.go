// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func TestGauge_IncAndDec(t *testing.T) {
	g := Gauge{}
	g.Inc()
	g.Inc()
	g.Dec()

	require.EqualValues(t, 1, g.Value(), "gauge value differed from expected")
}

func TestGauge_Add(t *testing.T) {
	g := Gauge{}
	g.Add(10)
	g.Add(-3)

	require.EqualValues(t, 7, g.Value(), "gauge value differed from expected")
}

func TestGauge_UpdateOverridesCount(t *testing.T) {
	g := Gauge{}
	g.Inc()
	g.Update(123)

	require.EqualValues(t, 123, g.Value(), "gauge value differed from expected")
}

func TestGauge_ConcurrentIncrementsAreNotLost(t *testing.T) {
	g := Gauge{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Inc()
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 5000, g.Value())
}

func TestGauge_ExportsNameAndValue(t *testing.T) {
	g := NewRegistry().NewGauge("BallotStore.CastVote.Count")
	g.Add(2)

	require.Equal(t, gaugeExport{Name: "BallotStore.CastVote.Count", Value: 2}, g.Export())
	require.Equal(t, "metric BallotStore.CastVote.Count: 2\n", g.String())
}
