// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/orbs-ballot-ledger/crypto/hash"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"sync"
	"time"
)

// Signed vote requests accepted within the expiration window, keyed by the digest of signer and body.
// A request is replayable only while its timestamp is inside the window, so an entry is dropped once it expires.
type acceptedVotePool struct {
	lock        sync.Mutex
	votes       map[string]time.Time
	nextCleanup time.Time
	window      time.Duration

	countGauge *metric.Gauge
}

func newAcceptedVotePool(window time.Duration, metricFactory metric.Factory) *acceptedVotePool {
	return &acceptedVotePool{
		votes:      make(map[string]time.Time),
		window:     window,
		countGauge: metricFactory.NewGauge("HttpServer.AcceptedVotes.Count"),
	}
}

func signedRequestDigest(publicKey []byte, body []byte) hash.Sha256 {
	return hash.CalcSha256(publicKey, body)
}

// Returns false when the same signed request was already accepted and has not expired yet
func (p *acceptedVotePool) addIfAbsent(digest hash.Sha256, requested time.Time, now time.Time) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if !now.Before(p.nextCleanup) {
		p.clearExpired(now)
		p.nextCleanup = now.Add(p.window / 2)
	}

	key := digest.String()
	if expiresAt, found := p.votes[key]; found && !now.After(expiresAt) {
		return false
	}

	p.votes[key] = requested.Add(p.window)
	p.countGauge.Update(int64(len(p.votes)))
	return true
}

func (p *acceptedVotePool) clearExpired(now time.Time) {
	for key, expiresAt := range p.votes {
		if now.After(expiresAt) {
			delete(p.votes, key)
		}
	}
	p.countGauge.Update(int64(len(p.votes)))
}
