package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/shared"
)

// subscription ties one handler to the event types it asked for. An empty
// type set means the handler sees every event on the bus.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) wants(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// InMemoryEventBus fans domain events out to in-process handlers
// synchronously, in subscription order. A handler that fails or panics is
// logged and skipped so the remaining handlers still run.
type InMemoryEventBus struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *zap.Logger
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{logger: logger}
}

// Subscribe registers a handler for the given event types. When no types
// are passed, the handler's own EventTypes decide; an empty answer there
// subscribes it to everything.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	b.logger.Debug("event handler subscribed",
		zap.Strings("event_types", eventTypes))
}

// Unsubscribe drops every subscription held by the given handler.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.handler != handler {
			kept = append(kept, s)
		}
	}
	b.subs = kept
}

// Publish delivers each event to every matching subscriber before moving
// on to the next event. Handler failures never surface to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, ev := range events {
		matched := 0
		for _, sub := range subs {
			if !sub.wants(ev.EventType()) {
				continue
			}
			matched++
			b.deliver(ctx, sub.handler, ev)
		}
		if matched == 0 {
			b.logger.Debug("event had no subscribers",
				zap.String("event_type", ev.EventType()))
		}
	}
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.String("event_id", ev.EventID().String()),
				zap.Any("panic", r))
		}
	}()

	if err := handler.Handle(ctx, ev); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", ev.EventType()),
			zap.String("event_id", ev.EventID().String()),
			zap.Error(err))
	}
}

// Start and Stop only mark the lifecycle in the log. Delivery is
// synchronous inside Publish, so there is no machinery to spin up or
// drain.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("event bus started")
	return nil
}

func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.logger.Info("event bus stopped")
	return nil
}
