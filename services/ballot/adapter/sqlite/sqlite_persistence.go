// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package sqlite

import (
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/sqldb"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
	"os"
	"path/filepath"
)

const (
	driverName   = "sqlite"
	databaseFile = "ballot.sqlite"
	pragmas      = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ballot_namespaces (
		name TEXT PRIMARY KEY,
		created INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ballot_records (
		namespace TEXT NOT NULL REFERENCES ballot_namespaces(name),
		record_key TEXT NOT NULL,
		value BLOB,
		PRIMARY KEY (namespace, record_key)
	)`,
}

func isConflict(err error) bool {
	if e, ok := errors.Cause(err).(*sqlite.Error); ok {
		return e.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || e.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func dialect() sqldb.Dialect {
	return sqldb.Dialect{
		Name:       "Sqlite",
		Schema:     schema,
		IsConflict: isConflict,
	}
}

func NewKeyValuePersistence(ctx context.Context, dataDir string, logger log.Logger, metricFactory metric.Factory) (*sqldb.SqlKeyValuePersistence, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create sqlite data dir %s", dataDir)
	}
	path := filepath.Join(filepath.Clean(dataDir), databaseFile)

	db, err := sqlx.Open(driverName, "file:"+path+pragmas)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite database %s", path)
	}

	logger.Info("opened sqlite persistence", log.String("path", path))
	return newPersistence(ctx, db, logger, metricFactory)
}

// every connection to :memory: is a separate database, so the pool holds exactly one
func NewInMemoryKeyValuePersistence(ctx context.Context, logger log.Logger, metricFactory metric.Factory) (*sqldb.SqlKeyValuePersistence, error) {
	db, err := sqlx.Open(driverName, ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in memory sqlite database")
	}
	db.SetMaxOpenConns(1)

	return newPersistence(ctx, db, logger, metricFactory)
}

func newPersistence(ctx context.Context, db *sqlx.DB, logger log.Logger, metricFactory metric.Factory) (*sqldb.SqlKeyValuePersistence, error) {
	p, err := sqldb.NewKeyValuePersistence(ctx, db, dialect(), logger, metricFactory)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}
