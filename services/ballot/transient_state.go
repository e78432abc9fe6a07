// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
)

// Reads go through to persistence, writes stay here until commit. One per entry point call.
type transientState struct {
	persistence adapter.KeyValuePersistence
	namespace   string
	dirty       map[string][]byte
	order       []string
}

func newTransientState(persistence adapter.KeyValuePersistence, namespace string) *transientState {
	return &transientState{
		persistence: persistence,
		namespace:   namespace,
		dirty:       make(map[string][]byte),
	}
}

func (s *transientState) getValue(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok := s.dirty[key]; ok {
		return value, true, nil
	}
	return s.persistence.Get(ctx, s.namespace, key)
}

func (s *transientState) setValue(key string, value []byte) {
	if _, ok := s.dirty[key]; !ok {
		s.order = append(s.order, key)
	}
	s.dirty[key] = value
}

func (s *transientState) records() []*adapter.Record {
	records := make([]*adapter.Record, 0, len(s.order))
	for _, key := range s.order {
		records = append(records, &adapter.Record{Key: key, Value: s.dirty[key]})
	}
	return records
}

func (s *transientState) commit(ctx context.Context) error {
	if len(s.order) == 0 {
		return nil
	}
	return s.persistence.Write(ctx, s.namespace, s.records())
}
