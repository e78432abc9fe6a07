// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/leveldb"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/memory"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/postgres"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/redis"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/sqlite"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"path/filepath"
)

func NewPersistence(ctx context.Context, cfg config.PersistenceConfig, logger log.Logger, metricFactory metric.Factory) (adapter.KeyValuePersistence, error) {
	switch cfg.BallotPersistence() {
	case config.PERSISTENCE_MEMORY:
		return memory.NewKeyValuePersistence(metricFactory), nil
	case config.PERSISTENCE_LEVELDB:
		return leveldb.NewKeyValuePersistence(filepath.Join(cfg.BallotDataDir(), "leveldb"), logger, metricFactory)
	case config.PERSISTENCE_SQLITE:
		return sqlite.NewKeyValuePersistence(ctx, cfg.BallotDataDir(), logger, metricFactory)
	case config.PERSISTENCE_REDIS:
		return redis.NewKeyValuePersistence(ctx, cfg, logger, metricFactory)
	case config.PERSISTENCE_POSTGRES:
		return postgres.NewKeyValuePersistence(ctx, cfg.BallotPostgresUrl(), logger, metricFactory)
	default:
		return nil, errors.Errorf("unsupported ballot persistence %s", cfg.BallotPersistence())
	}
}
