package bus

import "context"

// Bus carries raw payloads between service instances.
type Bus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	// StartForwarder subscribes to channel and calls onMsg for every payload
	// until ctx ends. It returns once the subscription is confirmed.
	StartForwarder(ctx context.Context, channel string, onMsg func(payload []byte)) error
	Close() error
}
