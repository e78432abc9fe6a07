// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestEventually_ReturnsOnceConditionHolds(t *testing.T) {
	calls := 0
	require.True(t, Eventually(func() bool {
		calls++
		return calls == 3
	}))
	require.Equal(t, 3, calls)
}

func TestEventuallyWithin_GivesUpAfterTimeout(t *testing.T) {
	start := time.Now()
	require.False(t, EventuallyWithin(20*time.Millisecond, func() bool { return false }))
	require.True(t, time.Since(start) >= 20*time.Millisecond)
}

func TestWithContextWithTimeout_ContextExpires(t *testing.T) {
	WithContextWithTimeout(10*time.Millisecond, func(ctx context.Context) {
		<-ctx.Done()
		require.Equal(t, context.DeadlineExceeded, ctx.Err())
	})
}
