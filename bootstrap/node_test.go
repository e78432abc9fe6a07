// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"fmt"
	"github.com/gorilla/websocket"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/digest"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/orbs-ballot-ledger/services/events"
	"github.com/orbs-network/orbs-ballot-ledger/synchronization/supervised"
	"github.com/orbs-network/orbs-ballot-ledger/test"
	"github.com/orbs-network/orbs-ballot-ledger/test/with"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
	"time"
)

func startNode(t *testing.T, harness *with.LoggingHarness, cfg config.NodeConfig) (*Node, *jsonapi.BallotClient) {
	node, err := NewNode(cfg, harness.Logger)
	require.NoError(t, err, "node should start")
	return node, jsonapi.NewBallotClient(fmt.Sprintf("http://127.0.0.1:%d/", node.HttpPort()))
}

func stopNode(t *testing.T, node *Node) {
	supervised.ShutdownGracefully(node, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	node.WaitUntilShutdown(ctx)
	require.NoError(t, ctx.Err(), "node should shut down in time")
}

func TestNode_ServesVotesAndFeedsThem(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		node, client := startNode(t, harness, config.ForTests())
		defer stopNode(t, node)

		feed, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://127.0.0.1:%d%s", node.HttpPort(), jsonapi.VoteFeedPath), nil)
		require.NoError(t, err, "vote feed should accept connections")
		defer feed.Close()

		keyPair := keys.Ed25519KeyPairForTests(1)
		voter, err := digest.VoterIdentityOf(keyPair.PublicKey())
		require.NoError(t, err)

		test.WithContext(func(ctx context.Context) {
			_, err := client.RegisterProject(ctx, "p1")
			require.NoError(t, err)

			// the hub registers the feed client asynchronously
			require.True(t, test.Eventually(func() bool {
				return node.metricRegistry.Get("Events.WebSocket.ConnectedClients.Count").(*metric.Gauge).Value() == 1
			}), "feed client should be registered")

			vote, err := client.Vote(ctx, keyPair, "p1")
			require.NoError(t, err)
			require.True(t, vote.Recorded)
			require.EqualValues(t, 0, vote.VoteIndex)

			count, err := client.GetTotalVoteCount(ctx, "p1")
			require.NoError(t, err)
			require.EqualValues(t, 1, count)
		})

		require.NoError(t, feed.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, message, err := feed.ReadMessage()
		require.NoError(t, err, "vote should be fed to connected clients")

		event, err := events.UnmarshalVoteCastEvent(message)
		require.NoError(t, err)
		require.Equal(t, "p1", event.ProjectId)
		require.EqualValues(t, 0, event.Index)
		require.Equal(t, voter, event.Voter)
	})
}

func TestNode_RestartsOverExistingDictionary(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		cfg := config.ForTests()
		cfg.SetString(config.BALLOT_PERSISTENCE, config.PERSISTENCE_LEVELDB)
		cfg.SetString(config.BALLOT_DATA_DIR, t.TempDir())

		first, client := startNode(t, harness, cfg)
		test.WithContext(func(ctx context.Context) {
			_, err := client.RegisterProject(ctx, "p1")
			require.NoError(t, err)
			_, err = client.Vote(ctx, keys.Ed25519KeyPairForTests(2), "p1")
			require.NoError(t, err)
		})
		stopNode(t, first)

		second, client := startNode(t, harness, cfg)
		defer stopNode(t, second)
		test.WithContext(func(ctx context.Context) {
			count, err := client.GetTotalVoteCount(ctx, "p1")
			require.NoError(t, err, "project should survive a restart")
			require.EqualValues(t, 1, count)

			_, err = client.RegisterProject(ctx, "p1")
			require.Equal(t, http.StatusConflict, jsonapi.StatusCodeOf(err))
		})
	})
}

func TestNewPersistence_RejectsUnknownBackend(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		cfg := config.ForTests()
		cfg.SetString(config.BALLOT_PERSISTENCE, "floppy")

		test.WithContext(func(ctx context.Context) {
			_, err := NewPersistence(ctx, cfg, harness.Logger, nil)
			require.Error(t, err)
			require.Contains(t, err.Error(), "floppy")
		})
	})
}
