// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package leveldb

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"sync"
	"time"
)

var LogTag = log.String("adapter", "leveldb-persistence")

const (
	namespacePrefix = byte('n')
	recordPrefix    = byte('r')
	separator       = byte(0)
)

type metrics struct {
	writeTime *metric.Histogram
	writes    *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime: m.NewLatency("BallotPersistence.LevelDb.Write.ProcessingTime.Millis", 5*time.Second),
		writes:    m.NewRate("BallotPersistence.LevelDb.Write.Rate"),
	}
}

type LevelDbKeyValuePersistence struct {
	db      *leveldb.DB
	logger  log.Logger
	metrics *metrics

	// leveldb has no compare-and-set, namespace creation is serialized here
	namespaceMutex sync.Mutex
}

func NewKeyValuePersistence(dataDir string, logger log.Logger, metricFactory metric.Factory) (*LevelDbKeyValuePersistence, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", dataDir)
	}
	logger.Info("opened leveldb persistence", LogTag, log.String("data-dir", dataDir))
	return newPersistence(db, logger, metricFactory), nil
}

func NewInMemoryStorageKeyValuePersistence(logger log.Logger, metricFactory metric.Factory) (*LevelDbKeyValuePersistence, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open leveldb over memory storage")
	}
	return newPersistence(db, logger, metricFactory), nil
}

func newPersistence(db *leveldb.DB, logger log.Logger, metricFactory metric.Factory) *LevelDbKeyValuePersistence {
	return &LevelDbKeyValuePersistence{
		db:      db,
		logger:  logger.WithTags(LogTag),
		metrics: newMetrics(metricFactory),
	}
}

func namespaceKey(namespace string) []byte {
	return append([]byte{namespacePrefix, separator}, namespace...)
}

func recordKey(namespace string, key string) []byte {
	k := make([]byte, 0, len(namespace)+len(key)+3)
	k = append(k, recordPrefix, separator)
	k = append(k, namespace...)
	k = append(k, separator)
	return append(k, key...)
}

func (p *LevelDbKeyValuePersistence) CreateNamespace(ctx context.Context, namespace string) error {
	p.namespaceMutex.Lock()
	defer p.namespaceMutex.Unlock()

	exists, err := p.db.Has(namespaceKey(namespace), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to look up namespace %s", namespace)
	}
	if exists {
		return errors.Wrapf(adapter.ErrNamespaceExists, "namespace %s", namespace)
	}

	if err := p.db.Put(namespaceKey(namespace), []byte{}, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(err, "failed to create namespace %s", namespace)
	}
	p.logger.Info("created namespace", logfields.Namespace(namespace))
	return nil
}

func (p *LevelDbKeyValuePersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	exists, err := p.db.Has(namespaceKey(namespace), nil)
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up namespace %s", namespace)
	}
	return exists, nil
}

func (p *LevelDbKeyValuePersistence) requireNamespace(namespace string) error {
	exists, err := p.db.Has(namespaceKey(namespace), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to look up namespace %s", namespace)
	}
	if !exists {
		return errors.Wrapf(adapter.ErrNamespaceNotFound, "namespace %s", namespace)
	}
	return nil
}

func (p *LevelDbKeyValuePersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	if err := p.requireNamespace(namespace); err != nil {
		return nil, false, err
	}

	value, err := p.db.Get(recordKey(namespace, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s from namespace %s", key, namespace)
	}
	return value, true, nil
}

func (p *LevelDbKeyValuePersistence) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	start := time.Now()
	defer p.metrics.writeTime.RecordSince(start)

	if err := p.requireNamespace(namespace); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, r := range records {
		batch.Put(recordKey(namespace, r.Key), r.Value)
	}

	if err := p.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(err, "failed to write %d records to namespace %s", len(records), namespace)
	}
	p.metrics.writes.Measure(1)
	return nil
}

func (p *LevelDbKeyValuePersistence) Close() error {
	return p.db.Close()
}
