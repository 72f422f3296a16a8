package upstream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/yungbote/movies-backend/internal/platform/httpx"
)

// Stream opens one long-lived text/event-stream request and invokes onEvent
// per frame until the upstream closes, ctx ends, or onEvent returns an error.
// It is not retried: a dropped stream is the caller's to reopen.
func (c *Client) Stream(ctx context.Context, req Request, onEvent func(event string, data string) error) error {
	hreq, err := c.newRequest(ctx, req, "text/event-stream")
	if err != nil {
		return &Error{Kind: KindClient, Upstream: c.name, Message: err.Error(), Err: err, Attempts: 1}
	}
	resp, err := c.httpClient.Do(hreq)
	if err != nil {
		return c.transportError(ctx, err).withAttempts(c.name, 1)
	}
	defer resp.Body.Close()

	if !httpx.IsSuccess(resp.StatusCode) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return &Error{
			Kind:       classifyStatus(resp.StatusCode),
			Upstream:   c.name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
			Attempts:   1,
		}
	}

	if err := readSSE(resp.Body, onEvent); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// readSSE parses "event:"/"data:" frames separated by blank lines. Comment
// lines (":") such as heartbeats are skipped.
func readSSE(r io.Reader, onEvent func(event string, data string) error) error {
	br := bufio.NewReader(r)
	var (
		eventName string
		dataLines []string
	)

	flush := func() error {
		if len(dataLines) == 0 {
			eventName = ""
			return nil
		}
		data := strings.Join(dataLines, "\n")
		dataLines = nil
		ev := eventName
		eventName = ""
		if onEvent == nil {
			return nil
		}
		return onEvent(ev, data)
	}

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			eventName = fieldValue(line, "event:")
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, fieldValue(line, "data:"))
		}

		if readErr != nil {
			return flush()
		}
	}
}

// fieldValue strips the field name and at most one leading space.
func fieldValue(line, field string) string {
	return strings.TrimPrefix(strings.TrimPrefix(line, field), " ")
}
