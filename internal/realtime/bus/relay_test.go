package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/realtime"
)

// memBus delivers synchronously to forwarders registered on the same channel.
type memBus struct {
	mu        sync.Mutex
	handlers  map[string][]func([]byte)
	failNext  error
	published int
}

func newMemBus() *memBus { return &memBus{handlers: map[string][]func([]byte){}} }

func (b *memBus) Publish(_ context.Context, channel string, payload []byte) error {
	b.mu.Lock()
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		b.mu.Unlock()
		return err
	}
	b.published++
	hs := append([]func([]byte){}, b.handlers[channel]...)
	b.mu.Unlock()
	for _, h := range hs {
		h(payload)
	}
	return nil
}

func (b *memBus) StartForwarder(_ context.Context, channel string, onMsg func([]byte)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[channel] = append(b.handlers[channel], onMsg)
	return nil
}

func (b *memBus) Close() error { return nil }

type movie struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func recv(t *testing.T, sub *realtime.Subscription[movie]) movie {
	t.Helper()
	select {
	case v := <-sub.C():
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for relayed value")
	}
	return movie{}
}

func TestRelayFansOutAcrossInstances(t *testing.T) {
	b := newMemBus()
	ctx := context.Background()

	hubA := realtime.NewHub[movie]("movieinfos", logger.Nop())
	hubB := realtime.NewHub[movie]("movieinfos", logger.Nop())
	relayA := NewRelay(hubA, b, "", logger.Nop())
	relayB := NewRelay(hubB, b, "", logger.Nop())
	if err := relayA.Start(ctx); err != nil {
		t.Fatalf("Start A: %v", err)
	}
	if err := relayB.Start(ctx); err != nil {
		t.Fatalf("Start B: %v", err)
	}

	subA := hubA.Subscribe()
	subB := hubB.Subscribe()
	relayA.Publish(ctx, movie{ID: "abc", Name: "Batman Begins"})

	if got := recv(t, subA); got.ID != "abc" {
		t.Fatalf("instance A: want=abc got=%s", got.ID)
	}
	if got := recv(t, subB); got.Name != "Batman Begins" {
		t.Fatalf("instance B: want=Batman Begins got=%s", got.Name)
	}
	if b.published != 1 {
		t.Fatalf("bus publishes: want=1 got=%d", b.published)
	}
}

func TestRelayFallsBackToLocalHub(t *testing.T) {
	b := newMemBus()
	b.failNext = errors.New("redis down")
	hub := realtime.NewHub[movie]("movieinfos", logger.Nop())
	relay := NewRelay(hub, b, "movies", logger.Nop())
	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sub := hub.Subscribe()

	relay.Publish(context.Background(), movie{ID: "x"})
	if got := recv(t, sub); got.ID != "x" {
		t.Fatalf("fallback value: want=x got=%s", got.ID)
	}
}

func TestRelayWithoutBusPublishesLocally(t *testing.T) {
	hub := realtime.NewHub[movie]("reviews", logger.Nop())
	relay := NewRelay(hub, nil, "", nil)
	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	relay.Publish(context.Background(), movie{ID: "r1"})
	if v, ok := hub.Latest(); !ok || v.ID != "r1" {
		t.Fatalf("Latest: want=r1 got=%v ok=%v", v, ok)
	}
	if relay.Hub() != hub {
		t.Fatalf("Hub accessor mismatch")
	}
}
