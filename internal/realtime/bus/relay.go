package bus

import (
	"context"
	"encoding/json"

	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/realtime"
)

// Relay publishes values to a local hub, routing them through a Bus when one
// is configured so every instance's hub sees every create.
type Relay[T any] struct {
	hub     *realtime.Hub[T]
	bus     Bus
	channel string
	log     *logger.Logger
}

// NewRelay returns a relay over hub. A nil bus publishes locally only.
func NewRelay[T any](hub *realtime.Hub[T], b Bus, channel string, log *logger.Logger) *Relay[T] {
	if log == nil {
		log = logger.Nop()
	}
	if channel == "" {
		channel = hub.Name()
	}
	return &Relay[T]{
		hub:     hub,
		bus:     b,
		channel: channel,
		log:     log.With("component", "HubRelay", "channel", channel),
	}
}

func (r *Relay[T]) Hub() *realtime.Hub[T] { return r.hub }

// Publish never fails the caller: if the bus rejects the value it is
// delivered to the local hub instead.
func (r *Relay[T]) Publish(ctx context.Context, v T) {
	if r.bus == nil {
		r.hub.Publish(v)
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.Warn("hub relay marshal failed; publishing locally", "error", err)
		r.hub.Publish(v)
		return
	}
	if err := r.bus.Publish(ctx, r.channel, raw); err != nil {
		r.log.Warn("hub relay publish failed; publishing locally", "error", err)
		r.hub.Publish(v)
	}
}

// Start forwards bus payloads into the local hub until ctx ends.
func (r *Relay[T]) Start(ctx context.Context) error {
	if r.bus == nil {
		return nil
	}
	return r.bus.StartForwarder(ctx, r.channel, func(payload []byte) {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			r.log.Warn("bad hub relay payload", "error", err)
			return
		}
		r.hub.Publish(v)
	})
}
