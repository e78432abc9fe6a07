// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package websocket

import (
	"context"
	"github.com/gorilla/websocket"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/events"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"net/http"
	"time"
)

const writeTimeout = 5 * time.Second

// messages queued for a client before it is considered too slow and dropped
const clientSendBuffer = 64

type Client interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type connectionClient struct {
	conn *websocket.Conn
}

func (c *connectionClient) WriteMessage(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *connectionClient) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

func (c *connectionClient) Close() error {
	return c.conn.Close()
}

type metrics struct {
	connectedClients *metric.Gauge
	broadcasts       *metric.Gauge
	droppedClients   *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		connectedClients: m.NewGauge("Events.WebSocket.ConnectedClients.Count"),
		broadcasts:       m.NewGauge("Events.WebSocket.Broadcast.Count"),
		droppedClients:   m.NewGauge("Events.WebSocket.DroppedClients.Count"),
	}
}

// Every client gets its own writer goroutine fed by a buffered queue.
// The queue is closed by the hub loop when the client is dropped.
type subscriber struct {
	client Client
	send   chan []byte
}

type writeFailure struct {
	client Client
	err    error
}

// Feeds every published vote cast event to all connected websocket clients.
// The hub loop is the only goroutine touching the client set, and never blocks on a client.
type Hub struct {
	govnr.TreeSupervisor
	upgrader   websocket.Upgrader
	clients    map[Client]*subscriber
	register   chan Client
	unregister chan Client
	failed     chan writeFailure
	broadcast  chan []byte
	done       chan struct{}
	logger     log.Logger
	metrics    *metrics
}

func NewHub(ctx context.Context, parentLogger log.Logger, metricFactory metric.Factory) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:    make(map[Client]*subscriber),
		register:   make(chan Client),
		unregister: make(chan Client),
		failed:     make(chan writeFailure),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
		logger:     parentLogger.WithTags(events.LogTag, log.String("adapter", "websocket")),
		metrics:    newMetrics(metricFactory),
	}

	h.Supervise(govnr.Forever(ctx, "vote feed hub", logfields.GovnrErrorer(h.logger), func() {
		h.run(ctx)
	}))
	return h
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			if _, ok := h.clients[client]; ok {
				continue
			}
			sub := &subscriber{client: client, send: make(chan []byte, clientSendBuffer)}
			h.clients[client] = sub
			h.metrics.connectedClients.Inc()
			govnr.Once(logfields.GovnrErrorer(h.logger), func() {
				h.writeTo(sub)
			})
		case client := <-h.unregister:
			h.drop(client)
		case failure := <-h.failed:
			if _, ok := h.clients[failure.client]; ok {
				h.logger.Info("failed writing to vote feed client, dropping it", log.Error(failure.err))
				h.metrics.droppedClients.Inc()
				h.drop(failure.client)
			}
		case message := <-h.broadcast:
			h.metrics.broadcasts.Inc()
			for client, sub := range h.clients {
				select {
				case sub.send <- message:
				default:
					h.logger.Info("vote feed client is not keeping up, dropping it", log.Int("queued", len(sub.send)))
					h.metrics.droppedClients.Inc()
					h.drop(client)
				}
			}
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			select {
			case <-h.done:
			default:
				close(h.done)
			}
			return
		}
	}
}

func (h *Hub) drop(client Client) {
	sub, ok := h.clients[client]
	if !ok {
		return
	}
	delete(h.clients, client)
	h.metrics.connectedClients.Dec()
	close(sub.send)
	_ = client.Close()
}

// runs until the hub closes the queue or a write fails
func (h *Hub) writeTo(sub *subscriber) {
	for message := range sub.send {
		if err := sub.client.WriteMessage(websocket.TextMessage, message); err != nil {
			select {
			case h.failed <- writeFailure{client: sub.client, err: err}:
			case <-h.done:
			}
			return
		}
	}
}

func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.done:
		_ = client.Close()
	}
}

func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Publish(ctx context.Context, event *events.VoteCastEvent) error {
	message, err := event.Marshal()
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- message:
		return nil
	case <-h.done:
		return errors.New("vote feed hub is shut down")
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "aborted broadcasting vote cast event")
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Info("failed to upgrade vote feed connection", log.Error(err), log.String("remote-address", r.RemoteAddr))
		return
	}

	client := &connectionClient{conn: conn}
	h.Register(client)
	defer h.Unregister(client)

	// clients only listen, reading detects the disconnect
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return
		}
	}
}
