// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package postgres

import (
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter/sqldb"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// see http://www.postgresql.org/docs/current/static/errcodes-appendix.html
const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ballot_namespaces (
		name TEXT PRIMARY KEY,
		created BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ballot_records (
		namespace TEXT NOT NULL REFERENCES ballot_namespaces(name),
		record_key TEXT NOT NULL,
		value BYTEA,
		PRIMARY KEY (namespace, record_key)
	)`,
}

func isConflict(err error) bool {
	if e, ok := errors.Cause(err).(*pq.Error); ok {
		return e.Code == uniqueViolation
	}
	return false
}

func NewKeyValuePersistence(ctx context.Context, url string, logger log.Logger, metricFactory metric.Factory) (*sqldb.SqlKeyValuePersistence, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to postgres")
	}

	p, err := sqldb.NewKeyValuePersistence(ctx, db, sqldb.Dialect{
		Name:       "Postgres",
		Schema:     schema,
		IsConflict: isConflict,
	}, logger, metricFactory)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("connected to postgres persistence")
	return p, nil
}
