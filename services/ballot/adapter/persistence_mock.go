// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package adapter

import (
	"context"
	"github.com/orbs-network/go-mock"
)

type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) CreateNamespace(ctx context.Context, namespace string) error {
	ret := m.Called(ctx, namespace)
	return ret.Error(0)
}

func (m *MockPersistence) HasNamespace(ctx context.Context, namespace string) (bool, error) {
	ret := m.Called(ctx, namespace)
	return ret.Get(0).(bool), ret.Error(1)
}

func (m *MockPersistence) Get(ctx context.Context, namespace string, key string) ([]byte, bool, error) {
	ret := m.Called(ctx, namespace, key)
	if out := ret.Get(0); out != nil {
		return out.([]byte), ret.Get(1).(bool), ret.Error(2)
	} else {
		return nil, ret.Get(1).(bool), ret.Error(2)
	}
}

func (m *MockPersistence) Write(ctx context.Context, namespace string, records []*Record) error {
	ret := m.Called(ctx, namespace, records)
	return ret.Error(0)
}

func (m *MockPersistence) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
