package httpx

import (
	"errors"
	"net/http"
)

// HTTPStatusCoder is implemented by errors that map to a response status.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// ErrorCoder is implemented by errors that carry a stable machine-readable code.
type ErrorCoder interface {
	ErrorCode() string
}

// StatusOf returns the status an error should be rendered with, or 500.
func StatusOf(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine-readable error code, or fallback.
func CodeOf(err error, fallback string) string {
	var ec ErrorCoder
	if errors.As(err, &ec) {
		if c := ec.ErrorCode(); c != "" {
			return c
		}
	}
	return fallback
}

func IsSuccess(code int) bool     { return code >= 200 && code <= 299 }
func IsClientError(code int) bool { return code >= 400 && code <= 499 }

// PublicMessager is implemented by errors whose text is safe to show API callers.
type PublicMessager interface {
	PublicMessage() string
}

// MessageOf returns the caller-facing message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var pm PublicMessager
	if errors.As(err, &pm) {
		if msg := pm.PublicMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
