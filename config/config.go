// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"time"
)

type NodeConfig interface {
	HttpServerConfig
	BallotConfig
	PersistenceConfig
	EventsConfig
	LoggerConfig
	MetricsConfig

	GracefulShutdownTimeout() time.Duration
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type HttpServerConfig interface {
	HttpAddress() string
	Profiling() bool
	HttpVoteRateLimit() uint32
	VoteRequestExpirationWindow() time.Duration
}

type BallotConfig interface {
	BallotNamespace() string
}

type PersistenceConfig interface {
	BallotPersistence() string
	BallotDataDir() string
	BallotRedisAddress() string
	BallotRedisKeyPrefix() string
	BallotPostgresUrl() string
}

type EventsConfig interface {
	EventsAmqpUrl() string
	EventsAmqpExchange() string
}

type LoggerConfig interface {
	LoggerHttpEndpoint() string
	LoggerBulkSize() uint32
	LoggerFileTruncationInterval() time.Duration
	LoggerFullLog() bool
}

type MetricsConfig interface {
	MetricsReportInterval() time.Duration
	SystemMetricsEnabled() bool
	NtpServerAddress() string
}
