// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package adapter

import (
	"context"
	"github.com/pkg/errors"
)

var ErrNamespaceExists = errors.New("namespace already exists")
var ErrNamespaceNotFound = errors.New("namespace not found")

type Record struct {
	Key   string
	Value []byte
}

// A namespace is a named dictionary of byte values. Write applies all records or none of them.
type KeyValuePersistence interface {
	CreateNamespace(ctx context.Context, namespace string) error
	HasNamespace(ctx context.Context, namespace string) (bool, error)
	Get(ctx context.Context, namespace string, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, namespace string, records []*Record) error
	Close() error
}
