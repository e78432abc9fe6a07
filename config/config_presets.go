// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const ProjectDictionaryNamespace = "project_dictionary"

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetBool(HTTP_PROFILING, false)
	cfg.SetUint32(HTTP_VOTE_RATE_LIMIT, 0)

	// a signed vote request is replayable within this window
	cfg.SetDuration(VOTE_REQUEST_EXPIRATION_WINDOW, 5*time.Minute)

	cfg.SetString(BALLOT_NAMESPACE, ProjectDictionaryNamespace)
	cfg.SetString(BALLOT_PERSISTENCE, PERSISTENCE_LEVELDB)
	cfg.SetString(BALLOT_DATA_DIR, "/usr/local/var/orbs-ballot")
	cfg.SetString(BALLOT_REDIS_ADDRESS, "localhost:6379")
	cfg.SetString(BALLOT_REDIS_KEY_PREFIX, "ballot")

	cfg.SetString(EVENTS_AMQP_EXCHANGE, "ballot.vote-cast")

	cfg.SetUint32(LOGGER_BULK_SIZE, 100)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)
	cfg.SetBool(LOGGER_FULL_LOG, false)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetBool(SYSTEM_METRICS_ENABLED, true)
	cfg.SetString(NTP_SERVER_ADDRESS, "pool.ntp.org")

	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 5*time.Second)

	return cfg
}

// config for a production node
func ForProduction(dataDir string) mutableNodeConfig {
	cfg := defaultProductionConfig()

	if dataDir != "" {
		cfg.SetString(BALLOT_DATA_DIR, dataDir)
	}
	return cfg
}

// config for in-process tests, in-memory persistence and a random port
func ForTests() mutableNodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetString(BALLOT_PERSISTENCE, PERSISTENCE_MEMORY)
	cfg.SetString(BALLOT_DATA_DIR, filepath.Join(os.TempDir(), "orbs-ballot-data"))
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 100*time.Millisecond)
	cfg.SetBool(SYSTEM_METRICS_ENABLED, false)
	cfg.SetString(NTP_SERVER_ADDRESS, "")
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 1*time.Second)

	return cfg
}
