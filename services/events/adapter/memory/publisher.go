// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package memory

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/services/events"
	"sync"
)

type RecordingPublisher struct {
	sync.RWMutex
	published []*events.VoteCastEvent
	failWith  error
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event *events.VoteCastEvent) error {
	p.Lock()
	defer p.Unlock()

	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, event)
	return nil
}

func (p *RecordingPublisher) FailWith(err error) {
	p.Lock()
	defer p.Unlock()

	p.failWith = err
}

func (p *RecordingPublisher) Published() []*events.VoteCastEvent {
	p.RLock()
	defer p.RUnlock()

	return append([]*events.VoteCastEvent{}, p.published...)
}
