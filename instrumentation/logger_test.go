// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package instrumentation

import (
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func logToTempFile(t *testing.T, fullLog bool, f func(logger log.Logger)) string {
	dir, err := ioutil.TempDir("", "ballot-logger")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node.log")
	f(GetLogger(path, true, config.ForTests().SetBool(config.LOGGER_FULL_LOG, fullLog)))

	content, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestGetLogger_WithoutFullLogKeepsBallotStoreRecordsAndErrors(t *testing.T) {
	content := logToTempFile(t, false, func(logger log.Logger) {
		logger.WithTags(ballot.LogTag).Info("vote cast")
		logger.WithTags(log.Service("http-server")).Info("http server received vote")
		logger.Error("failed to commit vote")
	})

	require.Contains(t, content, "vote cast")
	require.Contains(t, content, "failed to commit vote")
	require.NotContains(t, content, "http server received vote")
}

func TestGetLogger_FullLogKeepsEverything(t *testing.T) {
	content := logToTempFile(t, true, func(logger log.Logger) {
		logger.WithTags(log.Service("http-server")).Info("http server received vote")
	})

	require.Contains(t, content, "http server received vote")
}
