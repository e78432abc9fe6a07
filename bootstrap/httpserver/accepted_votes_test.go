// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestAcceptedVotePool_RejectsSameRequestUntilItExpires(t *testing.T) {
	registry := metric.NewRegistry()
	p := newAcceptedVotePool(time.Minute, registry)
	requested := time.Unix(1570000000, 0)

	first := signedRequestDigest([]byte("signer-1"), []byte("body"))
	require.True(t, p.addIfAbsent(first, requested, requested))
	require.False(t, p.addIfAbsent(first, requested, requested.Add(30*time.Second)), "same request inside the window")

	require.True(t, p.addIfAbsent(signedRequestDigest([]byte("signer-2"), []byte("body")), requested, requested), "same body from another signer")
	require.True(t, p.addIfAbsent(signedRequestDigest([]byte("signer-1"), []byte("other body")), requested, requested))
	require.EqualValues(t, 3, registry.Get("HttpServer.AcceptedVotes.Count").(*metric.Gauge).Value())

	require.True(t, p.addIfAbsent(first, requested.Add(2*time.Minute), requested.Add(2*time.Minute)), "expired entries are forgotten")
	require.EqualValues(t, 1, registry.Get("HttpServer.AcceptedVotes.Count").(*metric.Gauge).Value())
}
