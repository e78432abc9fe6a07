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

func TestHistogram_RecordAndExport(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())

	for i := int64(1); i <= 100; i++ {
		h.Record(i * int64(time.Millisecond))
	}

	e := h.export()
	require.EqualValues(t, 100, e.Samples)
	require.InDelta(t, int64(time.Millisecond), e.Min, float64(time.Microsecond))
	require.InDelta(t, int64(100*time.Millisecond), e.Max, float64(time.Millisecond))
}

func TestHistogram_OverflowIsCounted(t *testing.T) {
	h := newHistogram("latency", time.Millisecond.Nanoseconds())

	h.Record(int64(time.Hour))

	require.EqualValues(t, 1, h.overflowCount)
	require.EqualValues(t, 0, h.export().Samples)
}

func TestHistogram_RotateKeepsRecentWindow(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())
	h.Record(int64(time.Millisecond))

	h.Rotate()

	require.EqualValues(t, 1, h.export().Samples, "merged export should still include the previous window")
}
