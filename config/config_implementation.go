// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"time"
)

const (
	HTTP_ADDRESS                   = "HTTP_ADDRESS"
	HTTP_PROFILING                 = "HTTP_PROFILING"
	HTTP_VOTE_RATE_LIMIT           = "HTTP_VOTE_RATE_LIMIT"
	VOTE_REQUEST_EXPIRATION_WINDOW = "VOTE_REQUEST_EXPIRATION_WINDOW"

	BALLOT_NAMESPACE        = "BALLOT_NAMESPACE"
	BALLOT_PERSISTENCE      = "BALLOT_PERSISTENCE"
	BALLOT_DATA_DIR         = "BALLOT_DATA_DIR"
	BALLOT_REDIS_ADDRESS    = "BALLOT_REDIS_ADDRESS"
	BALLOT_REDIS_KEY_PREFIX = "BALLOT_REDIS_KEY_PREFIX"
	BALLOT_POSTGRES_URL     = "BALLOT_POSTGRES_URL"

	EVENTS_AMQP_URL      = "EVENTS_AMQP_URL"
	EVENTS_AMQP_EXCHANGE = "EVENTS_AMQP_EXCHANGE"

	LOGGER_HTTP_ENDPOINT            = "LOGGER_HTTP_ENDPOINT"
	LOGGER_BULK_SIZE                = "LOGGER_BULK_SIZE"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	SYSTEM_METRICS_ENABLED  = "SYSTEM_METRICS_ENABLED"
	NTP_SERVER_ADDRESS      = "NTP_SERVER_ADDRESS"

	GRACEFUL_SHUTDOWN_TIMEOUT = "GRACEFUL_SHUTDOWN_TIMEOUT"
)

const (
	PERSISTENCE_MEMORY   = "memory"
	PERSISTENCE_LEVELDB  = "leveldb"
	PERSISTENCE_REDIS    = "redis"
	PERSISTENCE_SQLITE   = "sqlite"
	PERSISTENCE_POSTGRES = "postgres"
)

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) Profiling() bool {
	return c.kv[HTTP_PROFILING].BoolValue
}

func (c *config) HttpVoteRateLimit() uint32 {
	return c.kv[HTTP_VOTE_RATE_LIMIT].Uint32Value
}

func (c *config) VoteRequestExpirationWindow() time.Duration {
	return c.kv[VOTE_REQUEST_EXPIRATION_WINDOW].DurationValue
}

func (c *config) BallotNamespace() string {
	return c.kv[BALLOT_NAMESPACE].StringValue
}

func (c *config) BallotPersistence() string {
	return c.kv[BALLOT_PERSISTENCE].StringValue
}

func (c *config) BallotDataDir() string {
	return c.kv[BALLOT_DATA_DIR].StringValue
}

func (c *config) BallotRedisAddress() string {
	return c.kv[BALLOT_REDIS_ADDRESS].StringValue
}

func (c *config) BallotRedisKeyPrefix() string {
	return c.kv[BALLOT_REDIS_KEY_PREFIX].StringValue
}

func (c *config) BallotPostgresUrl() string {
	return c.kv[BALLOT_POSTGRES_URL].StringValue
}

func (c *config) EventsAmqpUrl() string {
	return c.kv[EVENTS_AMQP_URL].StringValue
}

func (c *config) EventsAmqpExchange() string {
	return c.kv[EVENTS_AMQP_EXCHANGE].StringValue
}

func (c *config) LoggerHttpEndpoint() string {
	return c.kv[LOGGER_HTTP_ENDPOINT].StringValue
}

func (c *config) LoggerBulkSize() uint32 {
	return c.kv[LOGGER_BULK_SIZE].Uint32Value
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) NtpServerAddress() string {
	return c.kv[NTP_SERVER_ADDRESS].StringValue
}

func (c *config) SystemMetricsEnabled() bool {
	return c.kv[SYSTEM_METRICS_ENABLED].BoolValue
}

func (c *config) GracefulShutdownTimeout() time.Duration {
	return c.kv[GRACEFUL_SHUTDOWN_TIMEOUT].DurationValue
}
