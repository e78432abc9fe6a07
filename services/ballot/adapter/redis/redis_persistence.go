// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package redis

import (
	"context"
	"github.com/go-redis/redis/v8"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

var LogTag = log.String("adapter", "redis-persistence")

type Config interface {
	BallotRedisAddress() string
	BallotRedisKeyPrefix() string
}

type metrics struct {
	writeTime *metric.Histogram
	writes    *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime: m.NewLatency("BallotPersistence.Redis.Write.ProcessingTime.Millis", 5*time.Second),
		writes:    m.NewRate("BallotPersistence.Redis.Write.Rate"),
	}
}

// Each namespace is a marker key plus one hash holding its records.
type RedisKeyValuePersistence struct {
	client  *redis.Client
	prefix  string
	logger  log.Logger
	metrics *metrics
}

func NewKeyValuePersistence(ctx context.Context, config Config, logger log.Logger, metricFactory metric.Factory) (*RedisKeyValuePersistence, error) {
	client := redis.NewClient(&redis.Options{
		Addr: config.BallotRedisAddress(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "could not connect to redis at %s", config.BallotRedisAddress())
	}

	logger.Info("connected to redis persistence", LogTag, log.String("address", config.BallotRedisAddress()))

	return &RedisKeyValuePersistence{
		client:  client,
		prefix:  config.BallotRedisKeyPrefix(),
		logger:  logger.WithTags(LogTag),
		metrics: newMetrics(metricFactory),
	}, nil
}

func (p *RedisKeyValuePersistence) namespaceKey(namespace string) string {
	return p.prefix + ":namespace:" + namespace
}

func (p *RedisKeyValuePersistence) recordsKey(namespace string) string {
	return p.prefix + ":records:" + namespace
}

func (p *RedisKeyValuePersistence) CreateNamespace(ctx context.Context, namespace string) error {
	created, err := p.client.SetNX(ctx, p.namespaceKey(namespace), time.Now().UTC().Format(time.RFC3339Nano), 0).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to create namespace %s", namespace)
	}
	if !created {
		return errors.Wrapf(adapter.ErrNamespaceExists, "namespace %s", namespace)
	}
	p.logger.Info("created namespace", logfields.Namespace(namespace))
	return nil
}

func (p *RedisKeyValuePersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	n, err := p.client.Exists(ctx, p.namespaceKey(namespace)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up namespace %s", namespace)
	}
	return n == 1, nil
}

func (p *RedisKeyValuePersistence) requireNamespace(ctx context.Context, namespace string) error {
	exists, err := p.HasNamespace(ctx, namespace)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(adapter.ErrNamespaceNotFound, "namespace %s", namespace)
	}
	return nil
}

func (p *RedisKeyValuePersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	if err := p.requireNamespace(ctx, namespace); err != nil {
		return nil, false, err
	}

	value, err := p.client.HGet(ctx, p.recordsKey(namespace), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s from namespace %s", key, namespace)
	}
	return value, true, nil
}

// MULTI/EXEC, the records land together or not at all
func (p *RedisKeyValuePersistence) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	start := time.Now()
	defer p.metrics.writeTime.RecordSince(start)

	if err := p.requireNamespace(ctx, namespace); err != nil {
		return err
	}

	recordsKey := p.recordsKey(namespace)
	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range records {
			pipe.HSet(ctx, recordsKey, r.Key, r.Value)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write %d records to namespace %s", len(records), namespace)
	}
	p.metrics.writes.Measure(1)
	return nil
}

func (p *RedisKeyValuePersistence) Close() error {
	return p.client.Close()
}
