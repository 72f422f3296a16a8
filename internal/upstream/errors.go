package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/movies-backend/internal/platform/httpx"
)

// Kind classifies a failed remote call. It is assigned once, when the
// response (or its absence) is first inspected, and never re-derived.
type Kind string

const (
	KindClient    Kind = "client_error"
	KindNotFound  Kind = "not_found"
	KindServer    Kind = "server_error"
	KindTransport Kind = "transport_error"
	// KindDecode means a 2xx body could not be decoded.
	KindDecode Kind = "decode_error"
	// KindCanceled means the caller's context ended before a terminal outcome.
	KindCanceled Kind = "canceled"
)

type Error struct {
	Kind       Kind
	Upstream   string
	StatusCode int
	// Message is the upstream-supplied body for HTTP failures, or the cause text otherwise.
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "upstream error"
	}
	var b strings.Builder
	if e.Upstream != "" {
		b.WriteString(e.Upstream)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if msg := e.message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) message() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.StatusCode != 0 {
		return http.StatusText(e.StatusCode)
	}
	return ""
}

// Retryable reports whether another attempt could change the outcome.
func (e *Error) Retryable() bool {
	if e == nil {
		return false
	}
	return e.Kind == KindServer || e.Kind == KindTransport
}

// HTTPStatusCode is the status the failure is rendered with at the API boundary.
// Client errors mirror the upstream status.
func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindClient:
		if e.StatusCode >= 400 && e.StatusCode <= 499 {
			return e.StatusCode
		}
		return http.StatusBadRequest
	case KindCanceled:
		if errors.Is(e.Err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) ErrorCode() string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

// PublicMessage is the text shown to API callers: the upstream's own message.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	return e.message()
}

// WithMessage returns a copy carrying msg; kind, status, attempts and cause are kept.
func (e *Error) WithMessage(msg string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Message = msg
	return &cp
}

func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) && ue != nil {
		return ue, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if ue, ok := AsError(err); ok {
		return ue.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// classifyStatus maps a non-2xx response to its error kind.
func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case httpx.IsClientError(status):
		return KindClient
	default:
		return KindServer
	}
}
