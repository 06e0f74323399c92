// Package events publishes resource lifecycle notifications to NSQ.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobly/internal/middleware"
)

// Publisher is satisfied by *nsq.Producer.
type Publisher interface {
	Publish(topic string, body []byte) error
}

// Discard drops every message. It stands in when events are disabled.
type Discard struct{}

func (Discard) Publish(string, []byte) error { return nil }

type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// Emitter wraps data in an Event and publishes it. Failures are logged, never returned.
type Emitter struct {
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewEmitter(pub Publisher, logger *slog.Logger) *Emitter {
	if pub == nil {
		pub = Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{pub: pub, logger: logger, now: time.Now}
}

func (e *Emitter) Emit(ctx context.Context, topic, eventType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to encode event", "type", eventType, "error", err)
		return
	}

	body, err := json.Marshal(Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		OccurredAt:    e.now().UTC(),
		CorrelationID: middleware.GetCorrelationID(ctx),
		Data:          raw,
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to encode event", "type", eventType, "error", err)
		return
	}

	if err := e.pub.Publish(topic, body); err != nil {
		e.logger.ErrorContext(ctx, "failed to publish event", "topic", topic, "type", eventType, "error", err)
		return
	}
	e.logger.DebugContext(ctx, "published event", "topic", topic, "type", eventType)
}
