// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package ballot

import (
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
)

// shared by every embedded store and never exported
var embeddedMetrics = metric.NewRegistry()

type fixedNamespace string

func (n fixedNamespace) BallotNamespace() string {
	return string(n)
}

// Builds a store for hosts that run without a node around them, such as a contract call.
// Log output is discarded and metrics are not exported.
func NewEmbeddedBallotStore(namespace string, persistence adapter.KeyValuePersistence) *Service {
	return NewBallotStore(fixedNamespace(namespace), persistence, log.GetLogger().WithOutput(), embeddedMetrics)
}
