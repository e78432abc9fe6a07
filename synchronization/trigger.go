// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package synchronization

import (
	"context"
	"github.com/orbs-network/govnr"
	"sync/atomic"
	"time"
)

// the trigger owns its goroutine through govnr so panics in the handler are logged and the loop restarts
type PeriodicalTrigger struct {
	govnr.TreeSupervisor
	interval       time.Duration
	handler        func()
	onStop         func()
	errorer        govnr.Errorer
	cancel         context.CancelFunc
	ticker         *time.Ticker
	Closed         govnr.ContextEndedChan
	name           string
	timesTriggered uint64
}

func NewPeriodicalTrigger(ctx context.Context, name string, interval time.Duration, errorer govnr.Errorer, trigger func(), onStop func()) *PeriodicalTrigger {
	subCtx, cancel := context.WithCancel(ctx)
	t := &PeriodicalTrigger{
		interval: interval,
		handler:  trigger,
		onStop:   onStop,
		cancel:   cancel,
		errorer:  errorer,
		name:     name,
	}

	t.run(subCtx)
	return t
}

func (t *PeriodicalTrigger) TimesTriggered() uint64 {
	return atomic.LoadUint64(&t.timesTriggered)
}

func (t *PeriodicalTrigger) run(ctx context.Context) {
	t.ticker = time.NewTicker(t.interval)
	h := govnr.Forever(ctx, t.name, t.errorer, func() {
		for {
			select {
			case <-t.ticker.C:
				atomic.AddUint64(&t.timesTriggered, 1)
				t.handler()
			case <-ctx.Done():
				t.ticker.Stop()
				if t.onStop != nil {
					go t.onStop()
				}
				return
			}
		}
	})
	t.Closed = h.Done()
	t.Supervise(h)
}

func (t *PeriodicalTrigger) Stop() {
	t.cancel()
	// ticker stop must be processed before returning
	<-t.Closed
}
