// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package memory

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/pkg/errors"
	"sort"
	"strings"
	"sync"
)

type metrics struct {
	numberOfKeys       *metric.Gauge
	numberOfNamespaces *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfKeys:       m.NewGauge("BallotPersistence.Memory.TotalNumberOfKeys.Count"),
		numberOfNamespaces: m.NewGauge("BallotPersistence.Memory.TotalNumberOfNamespaces.Count"),
	}
}

type namespaces map[string]map[string][]byte

type InMemoryKeyValuePersistence struct {
	metrics *metrics
	mutex   sync.RWMutex
	state   namespaces
}

func NewKeyValuePersistence(metricFactory metric.Factory) *InMemoryKeyValuePersistence {
	return &InMemoryKeyValuePersistence{
		metrics: newMetrics(metricFactory),
		state:   namespaces{},
	}
}

func (p *InMemoryKeyValuePersistence) reportSize() {
	nKeys := 0
	for _, records := range p.state {
		nKeys = nKeys + len(records)
	}
	p.metrics.numberOfKeys.Update(int64(nKeys))
	p.metrics.numberOfNamespaces.Update(int64(len(p.state)))
}

func (p *InMemoryKeyValuePersistence) CreateNamespace(ctx context.Context, namespace string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.state[namespace]; ok {
		return errors.Wrapf(adapter.ErrNamespaceExists, "namespace %s", namespace)
	}

	p.state[namespace] = map[string][]byte{}
	p.reportSize()
	return nil
}

func (p *InMemoryKeyValuePersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	_, ok := p.state[namespace]
	return ok, nil
}

func (p *InMemoryKeyValuePersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	records, ok := p.state[namespace]
	if !ok {
		return nil, false, errors.Wrapf(adapter.ErrNamespaceNotFound, "namespace %s", namespace)
	}

	value, found := records[key]
	if !found {
		return nil, false, nil
	}
	return copyOf(value), true, nil
}

func (p *InMemoryKeyValuePersistence) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	state, ok := p.state[namespace]
	if !ok {
		return errors.Wrapf(adapter.ErrNamespaceNotFound, "namespace %s", namespace)
	}

	for _, r := range records {
		state[r.Key] = copyOf(r.Value)
	}
	p.reportSize()
	return nil
}

func (p *InMemoryKeyValuePersistence) Close() error {
	return nil
}

func (p *InMemoryKeyValuePersistence) Dump() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	output := strings.Builder{}
	output.WriteString("{")
	names := make([]string, 0, len(p.state))
	for n := range p.state {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		keys := make([]string, 0, len(p.state[name]))
		for k := range p.state[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		output.WriteString(name + ":{")
		for _, k := range keys {
			output.WriteString(fmt.Sprintf("%s:%x,", k, p.state[name][k]))
		}
		output.WriteString("},")
	}
	output.WriteString("}")
	return output.String()
}

func copyOf(value []byte) []byte {
	result := make([]byte, len(value))
	copy(result, value)
	return result
}
