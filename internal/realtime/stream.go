package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/movies-backend/internal/platform/logger"
)

const DefaultHeartbeat = 15 * time.Second

var ErrStreamingUnsupported = errors.New("streaming unsupported")

// ServeSSE subscribes to hub for the lifetime of ctx and writes each value as
// an "event: message" frame. A comment ping is written every heartbeat.
func ServeSSE[T any](ctx context.Context, w http.ResponseWriter, hub *Hub[T], log *logger.Logger, heartbeat time.Duration) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if log == nil {
		log = logger.Nop()
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("SSE client context done", "subscriptionID", sub.ID, "err", ctx.Err())
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		case v, ok := <-sub.C():
			if !ok {
				return nil
			}
			raw, err := json.Marshal(v)
			if err != nil {
				log.Warn("Failed to marshal SSE value", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", raw); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}

// ServeNDJSON subscribes to hub for the lifetime of ctx and writes each value
// as one JSON document per line.
func ServeNDJSON[T any](ctx context.Context, w http.ResponseWriter, hub *Hub[T], log *logger.Logger) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}
	if log == nil {
		log = logger.Nop()
	}

	h := w.Header()
	h.Set("Content-Type", "application/x-ndjson")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			log.Debug("NDJSON client context done", "subscriptionID", sub.ID, "err", ctx.Err())
			return nil
		case v, ok := <-sub.C():
			if !ok {
				return nil
			}
			// Encode terminates each document with a newline.
			if err := enc.Encode(v); err != nil {
				log.Warn("Failed to write NDJSON value", "error", err)
				return err
			}
			flusher.Flush()
		}
	}
}
