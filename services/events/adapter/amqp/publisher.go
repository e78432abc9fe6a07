// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package amqp

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/events"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"sync"
	"time"
)

const (
	DefaultDialAttempts = 5
	DefaultDialBackoff  = 2 * time.Second
	publishTimeout      = 5 * time.Second
)

type Config interface {
	EventsAmqpUrl() string
	EventsAmqpExchange() string
}

type metrics struct {
	published *metric.Gauge
	failed    *metric.Gauge
	latency   *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		published: m.NewGauge("Events.Amqp.Published.Count"),
		failed:    m.NewGauge("Events.Amqp.Failed.Count"),
		latency:   m.NewLatency("Events.Amqp.Publish.Millis", 5*time.Second),
	}
}

// Publishes vote cast events as JSON to a durable fanout exchange
type Publisher struct {
	sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	logger     log.Logger
	metrics    *metrics
}

type DialPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func NewPublisher(ctx context.Context, config Config, policy DialPolicy, parentLogger log.Logger, metricFactory metric.Factory) (*Publisher, error) {
	logger := parentLogger.WithTags(events.LogTag, log.String("adapter", "amqp"), log.String("exchange", config.EventsAmqpExchange()))

	connection, err := dial(ctx, config.EventsAmqpUrl(), policy, logger)
	if err != nil {
		return nil, err
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, errors.Wrap(err, "failed to open amqp channel")
	}

	err = channel.ExchangeDeclare(config.EventsAmqpExchange(), amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		_ = connection.Close()
		return nil, errors.Wrapf(err, "failed to declare exchange %s", config.EventsAmqpExchange())
	}

	logger.Info("connected to amqp broker")
	return &Publisher{
		connection: connection,
		channel:    channel,
		exchange:   config.EventsAmqpExchange(),
		logger:     logger,
		metrics:    newMetrics(metricFactory),
	}, nil
}

func dial(ctx context.Context, url string, policy DialPolicy, logger log.Logger) (*amqp.Connection, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var connection *amqp.Connection
		if connection, err = amqp.Dial(url); err == nil {
			return connection, nil
		}

		if attempt == attempts {
			break
		}
		logger.Info("failed to connect to amqp broker, retrying", log.Error(err), log.Int("attempt", attempt), log.Stringable("backoff", policy.Backoff))
		select {
		case <-time.After(policy.Backoff):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "aborted connecting to amqp broker")
		}
	}

	return nil, errors.Wrapf(err, "could not connect to amqp broker after %d attempts", attempts)
}

func (p *Publisher) Publish(ctx context.Context, event *events.VoteCastEvent) error {
	start := time.Now()
	defer p.metrics.latency.RecordSince(start)

	body, err := event.Marshal()
	if err != nil {
		p.metrics.failed.Inc()
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.Lock()
	err = p.channel.PublishWithContext(publishCtx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Unix(0, int64(event.Timestamp)),
		Type:         "vote-cast",
		Body:         body,
	})
	p.Unlock()

	if err != nil {
		p.metrics.failed.Inc()
		return errors.Wrapf(err, "failed to publish vote %s:%d to exchange %s", event.ProjectId, event.Index, p.exchange)
	}

	p.metrics.published.Inc()
	return nil
}

func (p *Publisher) GracefulShutdown(shutdownContext context.Context) {
	if err := p.Close(); err != nil {
		p.logger.Error("failed to close amqp connection", log.Error(err))
	}
}

func (p *Publisher) Close() error {
	p.Lock()
	defer p.Unlock()

	if p.connection.IsClosed() {
		return nil
	}
	return p.connection.Close()
}
