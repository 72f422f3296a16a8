package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

const DefaultSubscriberBuffer = 1

// Subscription is one observer's view of a Hub. C is closed on Unsubscribe.
type Subscription[T any] struct {
	ID uuid.UUID
	ch chan T
}

func (s *Subscription[T]) C() <-chan T { return s.ch }

// Hub fans published values out to every current subscriber and replays the
// most recent value to new subscribers. Publishers never block: a subscriber
// whose buffer is full misses that value.
type Hub[T any] struct {
	name    string
	buffer  int
	log     *logger.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	latest    T
	hasLatest bool
	subs      map[*Subscription[T]]struct{}
}

type HubOption func(*hubOptions)

type hubOptions struct {
	buffer  int
	metrics *observability.Metrics
}

// WithBuffer sets each subscriber's channel capacity. Values below 1 are ignored.
func WithBuffer(n int) HubOption {
	return func(o *hubOptions) {
		if n >= 1 {
			o.buffer = n
		}
	}
}

func WithMetrics(m *observability.Metrics) HubOption {
	return func(o *hubOptions) { o.metrics = m }
}

func NewHub[T any](name string, log *logger.Logger, opts ...HubOption) *Hub[T] {
	o := hubOptions{buffer: DefaultSubscriberBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Hub[T]{
		name:    name,
		buffer:  o.buffer,
		log:     log.With("component", "Hub", "hub", name),
		metrics: o.metrics,
		subs:    make(map[*Subscription[T]]struct{}),
	}
}

func (h *Hub[T]) Name() string { return h.name }

// Publish records v as the latest value and offers it to every subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = v
	h.hasLatest = true
	h.metrics.IncHubPublished(h.name)

	for s := range h.subs {
		select {
		case s.ch <- v:
		default:
			h.metrics.IncHubDropped(h.name)
			h.log.Warn("Dropping hub value; subscriber buffer full", "subscriptionID", s.ID)
		}
	}
}

// Subscribe registers a new observer. If a value has been published, it is
// the first value the subscription yields.
func (h *Hub[T]) Subscribe() *Subscription[T] {
	s := &Subscription[T]{
		ID: uuid.New(),
		ch: make(chan T, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hasLatest {
		s.ch <- h.latest
	}
	h.subs[s] = struct{}{}
	h.metrics.SetHubSubscribers(h.name, len(h.subs))
	h.log.Debug("hub subscriber added", "subscriptionID", s.ID, "subscribers", len(h.subs))
	return s
}

// Unsubscribe removes s and closes its channel. Repeated calls are no-ops.
func (h *Hub[T]) Unsubscribe(s *Subscription[T]) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.ch)
	h.metrics.SetHubSubscribers(h.name, len(h.subs))
	h.log.Debug("hub subscriber removed", "subscriptionID", s.ID, "subscribers", len(h.subs))
}

// Close ends every open subscription. The hub stays usable and keeps its latest value.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		delete(h.subs, s)
		close(s.ch)
	}
	h.metrics.SetHubSubscribers(h.name, 0)
}

func (h *Hub[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.hasLatest
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
