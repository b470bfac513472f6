package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is what the bus carries. Payload returns one of the typed payload
// structs in workflow_events.go; subscribers type-assert on it instead of
// digging through maps.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() any
}

// BaseEvent is the envelope every workflow event embeds.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"payload"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e BaseEvent) Payload() any {
	return e.Data
}

type Handler func(ctx context.Context, event Event) error

// EventBus fans workflow events out to in-process subscribers. Publish is
// fire-and-forget so the committing transition never waits on a handler;
// PublishSync runs handlers inline for callers that need completion.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	logger      *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		logger:      logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
	eb.logger.Info("event subscriber registered",
		"event_type", eventType,
		"subscriber_count", len(eb.subscribers[eventType]))
}

func (eb *EventBus) subscribersFor(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.subscribers[eventType]
}

func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.subscribersFor(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("no subscribers for event", "event_type", event.EventType())
		return nil
	}

	eb.logger.Info("dispatching event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"subscriber_count", len(handlers))

	for _, handler := range handlers {
		go func(h Handler) {
			if err := h(ctx, event); err != nil {
				eb.logger.Error("event subscriber failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(handler)
	}

	return nil
}

func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	handlers := eb.subscribersFor(event.EventType())
	if len(handlers) == 0 {
		eb.logger.Debug("no subscribers for event", "event_type", event.EventType())
		return nil
	}

	eb.logger.Info("dispatching event synchronously",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"subscriber_count", len(handlers))

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Error("event subscriber failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("subscriber failed for event %s: %w", event.EventType(), err)
		}
	}

	return nil
}
