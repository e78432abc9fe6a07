// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package commands

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/bootstrap/httpserver"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/digest"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/memory"
	"github.com/orbs-network/orbs-ballot-ledger/test/with"
	"github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func tempKeyFile(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ballot-cli")
	require.NoError(t, err)
	return filepath.Join(dir, ".ballotKeys"), func() { _ = os.RemoveAll(dir) }
}

func TestKeygen_WritesReadableKeyFile(t *testing.T) {
	path, cleanup := tempKeyFile(t)
	defer cleanup()

	output, err := NewCommandRunner(time.Second).HandleKeygenCommand([]string{"-out", path})
	require.NoError(t, err)

	keyPair, err := readKeyFile(path)
	require.NoError(t, err)

	voter, err := digest.VoterIdentityOf(keyPair.PublicKey())
	require.NoError(t, err)
	require.Contains(t, output, voter)
}

func TestVoterIdentityMatchesOrbsAccountAddress(t *testing.T) {
	account, err := orbs.CreateAccount()
	require.NoError(t, err)

	voter, err := digest.VoterIdentityOf(account.PublicKey)
	require.NoError(t, err)
	require.True(t, strings.EqualFold(strings.TrimPrefix(account.Address, "0x"), voter), "voter %s, account address %s", voter, account.Address)
}

func TestReadKeyFile_RejectsMismatchedKeys(t *testing.T) {
	path, cleanup := tempKeyFile(t)
	defer cleanup()

	require.NoError(t, ioutil.WriteFile(path, []byte("00\n"+strings.Repeat("ab", 64)+"\n"), 0600))
	_, err := readKeyFile(path)
	require.Error(t, err)

	require.NoError(t, ioutil.WriteFile(path, []byte("just one line"), 0600))
	_, err = readKeyFile(path)
	require.Error(t, err)
}

func TestCommands_RequireProject(t *testing.T) {
	runner := NewCommandRunner(time.Second)
	for _, handle := range []func([]string) (string, error){runner.HandleRegisterCommand, runner.HandleCountCommand, runner.HandleReceiptCommand} {
		output, err := handle([]string{})
		require.Error(t, err)
		require.Contains(t, output, "Usage")
	}
}

func TestCommands_RegisterVoteAndCountAgainstServer(t *testing.T) {
	with.Concurrency(t, func(ctx context.Context, harness *with.ConcurrencyHarness) {
		registry := metric.NewRegistry()
		store := ballot.NewBallotStore(config.ForTests(), memory.NewKeyValuePersistence(registry), harness.Logger, registry)
		require.NoError(t, store.Initialize(ctx))
		server := httpserver.NewHttpServer(ctx, httpserver.NewServerConfig("127.0.0.1:0", false, 0, time.Minute), harness.Logger, store, registry, nil)
		harness.Supervise(server)
		defer server.GracefulShutdown(ctx)

		host := fmt.Sprintf("http://127.0.0.1:%d", server.Port())
		path, cleanup := tempKeyFile(t)
		defer cleanup()
		runner := NewCommandRunner(5 * time.Second)

		_, err := runner.HandleKeygenCommand([]string{"-out", path})
		require.NoError(t, err)

		output, err := runner.HandleRegisterCommand([]string{"-host", host, "-project", "p1"})
		require.NoError(t, err)
		require.Contains(t, output, "registered")

		output, err = runner.HandleVoteCommand([]string{"-host", host, "-project", "p1", "-keys", path})
		require.NoError(t, err)
		require.Contains(t, output, "vote 0 on p1 recorded")

		output, err = runner.HandleCountCommand([]string{"-host", host, "-project", "p1"})
		require.NoError(t, err)
		require.Equal(t, "1\n", output)

		keyPair, err := readKeyFile(path)
		require.NoError(t, err)
		voter, _ := digest.VoterIdentityOf(keyPair.PublicKey())
		output, err = runner.HandleReceiptCommand([]string{"-host", host, "-project", "p1", "-index", "0"})
		require.NoError(t, err)
		require.Equal(t, voter+"\n", output)
	})
}
