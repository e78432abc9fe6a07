// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	v := NewValidator(log.DefaultTestingLogger(t))

	require.NotPanics(t, func() {
		v.Validate(defaultProductionConfig())
	})
	require.NotPanics(t, func() {
		v.Validate(ForTests())
	})
}

func TestValidateConfig_PanicsOnInvalidValue(t *testing.T) {
	v := NewValidator(log.GetLogger().WithFilters(log.DiscardAll()))

	tests := []struct {
		name   string
		modify func(cfg mutableNodeConfig)
	}{
		{"zero expiration window", func(cfg mutableNodeConfig) { cfg.SetDuration(VOTE_REQUEST_EXPIRATION_WINDOW, 0) }},
		{"zero shutdown timeout", func(cfg mutableNodeConfig) { cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 0) }},
		{"empty namespace", func(cfg mutableNodeConfig) { cfg.SetString(BALLOT_NAMESPACE, "") }},
		{"unknown persistence", func(cfg mutableNodeConfig) { cfg.SetString(BALLOT_PERSISTENCE, "cassandra") }},
		{"leveldb without data dir", func(cfg mutableNodeConfig) { cfg.SetString(BALLOT_DATA_DIR, "") }},
		{"redis without address", func(cfg mutableNodeConfig) {
			cfg.SetString(BALLOT_PERSISTENCE, PERSISTENCE_REDIS)
			cfg.SetString(BALLOT_REDIS_ADDRESS, "")
		}},
		{"postgres without url", func(cfg mutableNodeConfig) { cfg.SetString(BALLOT_PERSISTENCE, PERSISTENCE_POSTGRES) }},
		{"amqp without exchange", func(cfg mutableNodeConfig) {
			cfg.SetString(EVENTS_AMQP_URL, "amqp://localhost")
			cfg.SetString(EVENTS_AMQP_EXCHANGE, "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultProductionConfig()
			tt.modify(cfg)
			require.Panics(t, func() {
				v.Validate(cfg)
			})
		})
	}
}

func TestValidateConfig_MemoryNeedsNoDataDir(t *testing.T) {
	cfg := ForTests()
	cfg.SetString(BALLOT_DATA_DIR, "")
	cfg.SetDuration(METRICS_REPORT_INTERVAL, time.Second)

	require.NotPanics(t, func() {
		NewValidator(log.DefaultTestingLogger(t)).Validate(cfg)
	})
}
