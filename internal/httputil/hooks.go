// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID set by CorrelationID.
const RequestIDHeader = "X-Request-ID"

// RequestHook decorates an outgoing request before it is sent. Returning an
// error aborts the request.
type RequestHook func(req *http.Request) error

// ApplyHooks runs hooks in order and stops at the first error.
func ApplyHooks(req *http.Request, hooks []RequestHook) error {
	for i, h := range hooks {
		if h == nil {
			continue
		}
		if err := h(req); err != nil {
			return fmt.Errorf("request hook %d: %w", i, err)
		}
	}
	return nil
}

// BearerToken sets an Authorization header. An empty token leaves the
// request untouched.
func BearerToken(token string) RequestHook {
	return func(req *http.Request) error {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// UserAgent sets the User-Agent header.
func UserAgent(ua string) RequestHook {
	return func(req *http.Request) error {
		if ua != "" {
			req.Header.Set("User-Agent", ua)
		}
		return nil
	}
}

// CorrelationID tags the request with a fresh X-Request-ID unless the caller
// already set one.
func CorrelationID() RequestHook {
	return func(req *http.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return nil
	}
}
