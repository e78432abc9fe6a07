// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package logfields

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"runtime/debug"
)

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err), log.String("panic", "true"), log.String("stack-trace", string(debug.Stack())))
}

func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}

func ProjectId(projectId string) *log.Field {
	return log.String("project-id", projectId)
}

func VoteIndex(index uint32) *log.Field {
	return &log.Field{Key: "vote-index", Uint: uint64(index), Type: log.UintType}
}

func VoteCount(count uint32) *log.Field {
	return &log.Field{Key: "vote-count", Uint: uint64(count), Type: log.UintType}
}

func Voter(identity string) *log.Field {
	return log.String("voter", identity)
}

func Namespace(name string) *log.Field {
	return log.String("namespace", name)
}

func ContextStringValue(ctx context.Context, key string) *log.Field {
	val := "not-found-in-context"
	if v := ctx.Value(key); v != nil {
		if vString, ok := v.(string); ok {
			val = vString
		} else {
			val = "found-in-context-but-not-string"
		}
	}
	return log.String(key, val)
}
