// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package ballot_contract

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1/state"
)

const namespaceMarkerPrefix = "_NAMESPACE_"

var namespacePresent = []byte{1}

// Contract state has no namespaces and no missing keys, an unset key reads as empty.
// Writes land in the transaction state diff, which the platform discards when the call panics.
type statePersistence struct{}

func newStatePersistence() adapter.KeyValuePersistence {
	return &statePersistence{}
}

func (p *statePersistence) CreateNamespace(ctx context.Context, namespace string) error {
	if exists, _ := p.HasNamespace(ctx, namespace); exists {
		return adapter.ErrNamespaceExists
	}
	state.WriteBytes(namespaceMarker(namespace), namespacePresent)
	return nil
}

func (p *statePersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	return len(state.ReadBytes(namespaceMarker(namespace))) > 0, nil
}

func (p *statePersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	value := state.ReadBytes(stateKey(namespace, key))
	return value, len(value) > 0, nil
}

func (p *statePersistence) Write(ctx context.Context, namespace string, records []*adapter.Record) error {
	for _, record := range records {
		if len(record.Value) == 0 {
			state.Clear(stateKey(namespace, record.Key))
		} else {
			state.WriteBytes(stateKey(namespace, record.Key), record.Value)
		}
	}
	return nil
}

func (p *statePersistence) Close() error {
	return nil
}

func namespaceMarker(namespace string) []byte {
	return []byte(namespaceMarkerPrefix + namespace)
}

func stateKey(namespace string, key string) []byte {
	return []byte(namespace + "/" + key)
}
