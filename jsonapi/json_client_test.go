// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package jsonapi_test

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/bootstrap/httpserver"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/digest"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/memory"
	"github.com/orbs-network/orbs-ballot-ledger/test/with"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
	"time"
)

func withServer(t *testing.T, f func(ctx context.Context, client *jsonapi.BallotClient)) {
	with.Concurrency(t, func(ctx context.Context, harness *with.ConcurrencyHarness) {
		registry := metric.NewRegistry()
		store := ballot.NewBallotStore(config.ForTests(), memory.NewKeyValuePersistence(registry), harness.Logger, registry)
		require.NoError(t, store.Initialize(ctx))

		cfg := httpserver.NewServerConfig("127.0.0.1:0", false, 0, time.Minute)
		server := httpserver.NewHttpServer(ctx, cfg, harness.Logger, store, registry, nil)
		harness.Supervise(server)
		defer server.GracefulShutdown(ctx)

		f(ctx, jsonapi.NewBallotClient(fmt.Sprintf("http://127.0.0.1:%d/", server.Port())))
	})
}

func TestBallotClient_RegisterVoteAndTally(t *testing.T) {
	withServer(t, func(ctx context.Context, client *jsonapi.BallotClient) {
		keyPair := keys.Ed25519KeyPairForTests(3)
		expectedVoter, err := digest.VoterIdentityOf(keyPair.PublicKey())
		require.NoError(t, err)

		_, err = client.RegisterProject(ctx, "p1")
		require.NoError(t, err)

		count, err := client.GetTotalVoteCount(ctx, "p1")
		require.NoError(t, err)
		require.EqualValues(t, 0, count)

		vote, err := client.Vote(ctx, keyPair, "p1")
		require.NoError(t, err)
		require.True(t, vote.Recorded)
		require.Equal(t, expectedVoter, vote.Voter)

		count, err = client.GetTotalVoteCount(ctx, "p1")
		require.NoError(t, err)
		require.EqualValues(t, 1, count)

		receipt, err := client.GetVoteReceipt(ctx, "p1", 0)
		require.NoError(t, err)
		require.Equal(t, expectedVoter, receipt.Voter)

		_, err = client.RegisterProject(ctx, "p1")
		require.Equal(t, http.StatusConflict, jsonapi.StatusCodeOf(err))

		_, err = client.Vote(ctx, keyPair, "does_not_exist")
		require.Equal(t, http.StatusNotFound, jsonapi.StatusCodeOf(err))
		require.Contains(t, err.Error(), ballot.ErrUnknownProject.Error())
	})
}

func TestBallotClient_UnreachableServer(t *testing.T) {
	client := jsonapi.NewBallotClient("http://127.0.0.1:1")
	_, err := client.GetTotalVoteCount(context.Background(), "p1")
	require.Error(t, err)
	require.Zero(t, jsonapi.StatusCodeOf(err))
}
