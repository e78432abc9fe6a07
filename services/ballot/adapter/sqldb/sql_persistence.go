// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
// Package sqldb keeps ballot namespaces in two SQL tables, shared by the sqlite and postgres adapters.
package sqldb

import (
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

type Dialect struct {
	Name   string
	Schema []string
	// reports a unique constraint violation of the driver
	IsConflict func(err error) bool
}

type metrics struct {
	writeTime *metric.Histogram
	writes    *metric.Rate
}

func newMetrics(m metric.Factory, dialect string) *metrics {
	return &metrics{
		writeTime: m.NewLatency("BallotPersistence."+dialect+".Write.ProcessingTime.Millis", 5*time.Second),
		writes:    m.NewRate("BallotPersistence." + dialect + ".Write.Rate"),
	}
}

type SqlKeyValuePersistence struct {
	db      *sqlx.DB
	dialect Dialect
	logger  log.Logger
	metrics *metrics
}

func NewKeyValuePersistence(ctx context.Context, db *sqlx.DB, dialect Dialect, logger log.Logger, metricFactory metric.Factory) (*SqlKeyValuePersistence, error) {
	for _, statement := range dialect.Schema {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return nil, errors.Wrapf(err, "failed to apply %s schema", dialect.Name)
		}
	}

	return &SqlKeyValuePersistence{
		db:      db,
		dialect: dialect,
		logger:  logger.WithTags(log.String("adapter", dialect.Name+"-persistence")),
		metrics: newMetrics(metricFactory, dialect.Name),
	}, nil
}

func (p *SqlKeyValuePersistence) CreateNamespace(ctx context.Context, namespace string) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO ballot_namespaces (name, created) VALUES ($1, $2)`, namespace, time.Now().UTC().UnixNano())
	if err != nil {
		if p.dialect.IsConflict(err) {
			return errors.Wrapf(adapter.ErrNamespaceExists, "namespace %s", namespace)
		}
		return errors.Wrapf(err, "failed to create namespace %s", namespace)
	}
	p.logger.Info("created namespace", logfields.Namespace(namespace))
	return nil
}

func (p *SqlKeyValuePersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	return hasNamespace(ctx, p.db, namespace)
}

func hasNamespace(ctx context.Context, q sqlx.QueryerContext, namespace string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM ballot_namespaces WHERE name = $1`, namespace); err != nil {
		return false, errors.Wrapf(err, "failed to look up namespace %s", namespace)
	}
	return count == 1, nil
}

func requireNamespace(ctx context.Context, q sqlx.QueryerContext, namespace string) error {
	exists, err := hasNamespace(ctx, q, namespace)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(adapter.ErrNamespaceNotFound, "namespace %s", namespace)
	}
	return nil
}

func (p *SqlKeyValuePersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	if err := requireNamespace(ctx, p.db, namespace); err != nil {
		return nil, false, err
	}

	var value []byte
	err := p.db.GetContext(ctx, &value, `SELECT value FROM ballot_records WHERE namespace = $1 AND record_key = $2`, namespace, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s from namespace %s", key, namespace)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (p *SqlKeyValuePersistence) Write(ctx context.Context, namespace string, records []*adapter.Record) (err error) {
	start := time.Now()
	defer p.metrics.writeTime.RecordSince(start)

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = requireNamespace(ctx, tx, namespace); err != nil {
		return err
	}

	for _, r := range records {
		value := r.Value
		if value == nil {
			value = []byte{}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ballot_records (namespace, record_key, value) VALUES ($1, $2, $3)
			ON CONFLICT (namespace, record_key) DO UPDATE SET value = excluded.value
		`, namespace, r.Key, value)
		if err != nil {
			return errors.Wrapf(err, "failed to write key %s to namespace %s", r.Key, namespace)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit %d records to namespace %s", len(records), namespace)
	}
	p.metrics.writes.Measure(1)
	return nil
}

func (p *SqlKeyValuePersistence) Close() error {
	return p.db.Close()
}
