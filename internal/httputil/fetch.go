// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the transport pieces shared by the backend
// client: request hooks, fully-buffered round trips, and in-flight sharing
// of identical reads.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much of a response body Fetch reads. Tests override
// this to exercise truncation.
var MaxBodyBytes int64 = 64 << 20

// Response is a completed round trip with its body read into memory. It is
// safe to share between goroutines as long as nobody mutates it.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetch applies hooks to req, sends it with client, and reads the whole
// body. It makes exactly one attempt: transport failures, including the
// context deadline, are returned as-is and never retried.
//
// A non-2xx status is not an error at this level; the caller decides how to
// surface it.
func Fetch(ctx context.Context, client *http.Client, req *http.Request, hooks ...RequestHook) (*Response, error) {
	req = req.WithContext(ctx)
	if err := ApplyHooks(req, hooks); err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodyBytes)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}
