package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/okodanev/deskhub/internal/application/schedule"
)

// Broadcaster adapts the hub to the schedule.Notifier interface: every
// schedule event is serialized once and fanned out to all connected
// widgets. Delivery is best effort; a slow widget drops messages rather
// than blocking a store mutation.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*Broadcaster)

// WithBroadcasterLogger sets the logger for the broadcaster.
func WithBroadcasterLogger(logger *slog.Logger) BroadcasterOption {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// NewBroadcaster creates a new Broadcaster over the hub.
func NewBroadcaster(hub *Hub, opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		hub:    hub,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Publish implements schedule.Notifier.
func (b *Broadcaster) Publish(ctx context.Context, evt schedule.Event) {
	message, err := json.Marshal(evt)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to marshal schedule event",
			slog.String("event_type", string(evt.Type)),
			slog.String("error", err.Error()),
		)
		return
	}

	b.hub.Broadcast(message)

	b.logger.DebugContext(ctx, "broadcast schedule event",
		slog.String("event_type", string(evt.Type)),
	)
}
