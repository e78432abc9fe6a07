// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/orbs-network/scribe/log"
	"reflect"
	"runtime"
	"strings"
	"time"
)

type validator struct {
	logger log.Logger
}

func NewValidator(logger log.Logger) *validator {
	return &validator{logger: logger}
}

func (v *validator) Validate(cfg NodeConfig) {
	v.requirePositive(cfg.VoteRequestExpirationWindow)
	v.requirePositive(cfg.GracefulShutdownTimeout)
	v.requirePositive(cfg.MetricsReportInterval)
	v.requireNonEmpty(cfg.BallotNamespace)

	switch cfg.BallotPersistence() {
	case PERSISTENCE_MEMORY:
	case PERSISTENCE_LEVELDB, PERSISTENCE_SQLITE:
		v.requireNonEmpty(cfg.BallotDataDir)
	case PERSISTENCE_REDIS:
		v.requireNonEmpty(cfg.BallotRedisAddress)
	case PERSISTENCE_POSTGRES:
		v.requireNonEmpty(cfg.BallotPostgresUrl)
	default:
		v.fail("unsupported ballot persistence", log.String("ballot-persistence", cfg.BallotPersistence()))
	}

	if cfg.EventsAmqpUrl() != "" {
		v.requireNonEmpty(cfg.EventsAmqpExchange)
	}
}

func (v *validator) requirePositive(d func() time.Duration) {
	if d() <= 0 {
		v.fail("config value must be positive", log.Stringable(funcName(d), d()))
	}
}

func (v *validator) requireNonEmpty(s func() string) {
	if s() == "" {
		v.fail("config value must not be empty", log.String("key", funcName(s)))
	}
}

func (v *validator) fail(message string, fields ...*log.Field) {
	v.logger.Error(message, fields...)
	panic(message)
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
