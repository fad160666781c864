package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	handler Handler
	types   []string
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// Bus is an in-process Emitter.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{logger: logger.With("component", "event_bus")}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given.
func (b *Bus) Subscribe(handler Handler, types ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{handler: handler, types: types})
	b.logger.Debug("handler subscribed", "types", types, "subscriptions", len(b.subs))
}

// Emit delivers event to every matching handler, even after one fails. The
// returned error joins all handler errors.
func (b *Bus) Emit(ctx context.Context, event *Event) error {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	var errs []error
	delivered := 0
	for _, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				"error", err,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}
	b.logger.DebugContext(ctx, "event emitted",
		"event_id", event.ID,
		"event_type", event.Type,
		"delivered", delivered)

	return errors.Join(errs...)
}

// LogHandler writes one audit line per event.
type LogHandler struct {
	logger *slog.Logger
}

func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "audit")}
}

func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.logger.InfoContext(ctx, "upstream write recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Any("payload", event.Payload),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}
