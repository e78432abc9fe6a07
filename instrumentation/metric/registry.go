// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/synchronization"
	"github.com/orbs-network/scribe/log"
	"sync"
	"time"
)

type Factory interface {
	NewLatency(name string, maxDuration time.Duration) *Histogram
	NewGauge(name string) *Gauge
	NewRate(name string) *Rate
	NewText(name string, defaultValue ...string) *Text
}

type Registry interface {
	Factory
	String() string
	Get(name string) metric
	ExportAll() map[string]exportedMetric
	ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger
}

type exportedMetric interface {
	LogRow() []*log.Field
}

type metric interface {
	fmt.Stringer
	Name() string
	Export() exportedMetric
}

type namedMetric struct {
	name string
}

func (m *namedMetric) Name() string {
	return m.name
}

func NewRegistry() Registry {
	return &inMemoryRegistry{}
}

type inMemoryRegistry struct {
	mu struct {
		sync.RWMutex
		metrics map[string]metric
		order   []string
	}
}

// metrics are unique by name; registering an existing name returns the existing metric
func (r *inMemoryRegistry) register(m metric) metric {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mu.metrics == nil {
		r.mu.metrics = make(map[string]metric)
	}

	if existing, ok := r.mu.metrics[m.Name()]; ok {
		return existing
	}

	r.mu.metrics[m.Name()] = m
	r.mu.order = append(r.mu.order, m.Name())
	return m
}

func (r *inMemoryRegistry) Get(name string) metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.mu.metrics[name]
}

func (r *inMemoryRegistry) NewRate(name string) *Rate {
	return r.register(newRate(name)).(*Rate)
}

func (r *inMemoryRegistry) NewGauge(name string) *Gauge {
	return r.register(&Gauge{namedMetric: namedMetric{name: name}}).(*Gauge)
}

func (r *inMemoryRegistry) NewLatency(name string, maxDuration time.Duration) *Histogram {
	return r.register(newHistogram(name, maxDuration.Nanoseconds())).(*Histogram)
}

func (r *inMemoryRegistry) NewText(name string, defaultValue ...string) *Text {
	return r.register(newText(name, defaultValue...)).(*Text)
}

func (r *inMemoryRegistry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s string
	for _, name := range r.mu.order {
		s += r.mu.metrics[name].String()
	}

	return s
}

func (r *inMemoryRegistry) ExportAll() map[string]exportedMetric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]exportedMetric)
	for name, m := range r.mu.metrics {
		all[name] = m.Export()
	}

	return all
}

func (r *inMemoryRegistry) report(logger log.Logger) {
	for _, value := range r.ExportAll() {
		if logRow := value.LogRow(); logRow != nil {
			logger.Metric(logRow...)
		}
	}
}

func (r *inMemoryRegistry) ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger {
	return synchronization.NewPeriodicalTrigger(ctx, "metric-registry-reporter", interval, logfields.GovnrErrorer(logger), func() {
		r.report(logger)

		// only histograms are rotated
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, m := range r.mu.metrics {
			if h, ok := m.(*Histogram); ok {
				h.Rotate()
			}
		}
	}, func() {
		r.report(logger)
	})
}
