package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/ctxutil"
	"github.com/yungbote/movies-backend/internal/platform/httpx"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

type Options struct {
	// Name identifies the upstream in errors, logs and metrics.
	Name    string
	BaseURL string
	// Timeout bounds a single attempt, not the whole call.
	Timeout    time.Duration
	Retry      RetryPolicy
	HTTPClient *http.Client
	Log        *logger.Logger
	Metrics    *observability.Metrics
}

// Request describes one logical call. ID, when set, is appended to the base
// URL as a single escaped path segment.
type Request struct {
	Method string
	ID     string
	Query  url.Values
}

type Result struct {
	StatusCode int
	Attempts   int
}

// Client performs classified, retried calls against one upstream. It keeps no
// per-call state and is safe for concurrent use.
type Client struct {
	name       string
	baseURL    string
	timeout    time.Duration
	policy     RetryPolicy
	httpClient *http.Client
	log        *logger.Logger
	metrics    *observability.Metrics
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream: baseURL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("upstream: invalid baseURL %q: %w", baseURL, err)
	}
	if err := opts.Retry.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "upstream"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		name:       name,
		baseURL:    baseURL,
		timeout:    timeout,
		policy:     opts.Retry,
		httpClient: hc,
		log:        log.With("upstream", name),
		metrics:    opts.Metrics,
	}, nil
}

func (c *Client) Name() string        { return c.name }
func (c *Client) BaseURL() string     { return c.baseURL }
func (c *Client) Policy() RetryPolicy { return c.policy }

// Call runs req until it succeeds, fails with a non-retryable kind, or
// exhausts the retry policy. On failure the last classified error is returned
// unchanged apart from Attempts. A 2xx body is decoded into out when out is non-nil.
func (c *Client) Call(ctx context.Context, req Request, out any) (Result, error) {
	start := time.Now()
	var (
		attempts int
		status   int
		last     *Error
	)

	op := func() (struct{}, error) {
		attempts++
		code, err := c.attempt(ctx, req, out)
		status = code
		if err == nil {
			return struct{}{}, nil
		}
		last = err
		if !err.Retryable() {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	notify := func(err error, next time.Duration) {
		kind := KindOf(err)
		c.metrics.IncUpstreamRetry(c.name, string(kind))
		c.log.Warn("upstream attempt failed; retrying",
			"kind", kind,
			"status", status,
			"attempt", attempts,
			"max_attempts", c.policy.MaxAttempts,
			"delay", next.String(),
			"request_id", ctxutil.RequestID(ctx),
		)
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(c.policy.newBackOff()),
		backoff.WithMaxTries(uint(c.policy.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	res := Result{StatusCode: status, Attempts: attempts}
	if err == nil {
		c.metrics.ObserveUpstreamCall(c.name, "success", attempts, time.Since(start))
		return res, nil
	}

	var final *Error
	if _, ok := AsError(err); ok && last != nil {
		final = last
	} else {
		// Retry stopped on the caller's context while waiting out a backoff.
		final = &Error{Kind: KindCanceled, Err: err}
	}
	final = final.withAttempts(c.name, attempts)

	c.metrics.ObserveUpstreamCall(c.name, string(final.Kind), attempts, time.Since(start))
	if final.Retryable() {
		c.log.Warn("upstream call failed after retries",
			"kind", final.Kind,
			"status", final.StatusCode,
			"attempts", attempts,
			"request_id", ctxutil.RequestID(ctx),
		)
	}
	return res, final
}

// attempt performs one request and classifies its outcome.
func (c *Client) attempt(ctx context.Context, req Request, out any) (int, *Error) {
	if err := ctx.Err(); err != nil {
		return 0, &Error{Kind: KindCanceled, Err: err}
	}
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hreq, err := c.newRequest(attemptCtx, req, "application/json")
	if err != nil {
		return 0, &Error{Kind: KindClient, Message: err.Error(), Err: err}
	}

	resp, err := c.httpClient.Do(hreq)
	if err != nil {
		return 0, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, c.transportError(ctx, err)
	}

	if !httpx.IsSuccess(resp.StatusCode) {
		return resp.StatusCode, &Error{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &Error{
				Kind:       KindDecode,
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("decode response: %v", err),
				Err:        err,
			}
		}
	}
	return resp.StatusCode, nil
}

// transportError separates a caller cancellation from a connectivity fault.
// A per-attempt timeout is a connectivity fault; the caller's context is not.
func (c *Client) transportError(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Kind: KindCanceled, Err: ctxErr}
	}
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}

func (c *Client) newRequest(ctx context.Context, req Request, accept string) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	hreq, err := http.NewRequestWithContext(ctx, method, c.url(req), nil)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Accept", accept)
	if rid := ctxutil.RequestID(ctx); rid != "" {
		hreq.Header.Set("X-Request-Id", rid)
	}
	return hreq, nil
}

func (c *Client) url(req Request) string {
	u := c.baseURL
	if id := strings.TrimSpace(req.ID); id != "" {
		u += "/" + url.PathEscape(id)
	}
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func (e *Error) withAttempts(name string, attempts int) *Error {
	cp := *e
	cp.Upstream = name
	cp.Attempts = attempts
	return &cp
}
