// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client is the typed facade over the analysis backend's HTTP API.
//
// A Client is built once from a ClientConfig and never changes afterwards;
// it is safe for concurrent use. Every operation issues one request, makes
// one attempt, and either returns the decoded payload or an error. Failures
// are logged once and handed back to the caller unchanged: there is no
// retry, no backoff, and no partial result. Identical concurrent reads share
// one round trip; nothing is cached after it returns.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/anomaly-console/internal/httputil"
	"github.com/pdiddy/anomaly-console/pkg/types"
)

// Client issues typed requests against the backend.
type Client struct {
	base          *url.URL
	http          *http.Client
	hooks         []httputil.RequestHook
	timeout       time.Duration
	uploadTimeout time.Duration
	log           zerolog.Logger
	inflight      httputil.Inflight
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRequestHook appends a hook run on every outgoing request, after the
// built-in User-Agent, correlation-ID, and bearer-token hooks.
func WithRequestHook(h httputil.RequestHook) Option {
	return func(c *Client) {
		c.hooks = append(c.hooks, h)
	}
}

// WithLogger sets the logger failures are reported to. The default discards.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New validates cfg (after applying defaults) and builds a Client.
func New(cfg types.ClientConfig, opts ...Option) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base_url: %w", err)
	}

	c := &Client{
		base:          base,
		http:          &http.Client{},
		timeout:       cfg.Timeout,
		uploadTimeout: cfg.UploadTimeout,
		log:           zerolog.Nop(),
		hooks: []httputil.RequestHook{
			httputil.UserAgent(cfg.UserAgent),
			httputil.CorrelationID(),
			httputil.BearerToken(cfg.APIToken),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend prefix requests are sent to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// call describes one backend request.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	timeout     time.Duration
}

// endpoint joins the call's escaped path and query onto the base URL.
func (c *Client) endpoint(cl call) string {
	u := c.base.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}
	return u.String()
}

// do sends cl and returns the buffered response. Non-2xx statuses become
// *APIError. Every failure is logged before it is returned.
func (c *Client) do(ctx context.Context, cl call) (*httputil.Response, error) {
	if cl.timeout <= 0 {
		cl.timeout = c.timeout
	}
	target := c.endpoint(cl)

	send := func(parent context.Context) (*httputil.Response, error) {
		ctx, cancel := context.WithTimeout(parent, cl.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if cl.contentType != "" {
			req.Header.Set("Content-Type", cl.contentType)
		}
		return httputil.Fetch(ctx, c.http, req, c.hooks...)
	}

	var (
		resp *httputil.Response
		err  error
	)
	if cl.method == http.MethodGet {
		// The shared round trip outlives any one caller's cancellation; each
		// caller's ctx only ends its own wait.
		shared := context.WithoutCancel(ctx)
		resp, _, err = c.inflight.Do(ctx, cl.method+" "+target, func() (*httputil.Response, error) {
			return send(shared)
		})
	} else {
		resp, err = send(ctx)
	}

	if err != nil {
		err = fmt.Errorf("%s: %s %s: %w", cl.op, cl.method, cl.path, err)
		c.logFailure(cl, target, 0, err)
		return nil, err
	}
	if !resp.OK() {
		apiErr := &APIError{
			Op:         cl.op,
			Method:     cl.method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(resp.Body),
			Body:       resp.Body,
		}
		c.logFailure(cl, target, resp.StatusCode, apiErr)
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) logFailure(cl call, target string, status int, err error) {
	ev := c.log.Error().
		Str("op", cl.op).
		Str("method", cl.method).
		Str("url", target)
	if status != 0 {
		ev = ev.Int("status", status)
	}
	ev.Err(err).Msg("backend request failed")
}

// contractFailure logs and returns a ContractError for op.
func (c *Client) contractFailure(cl call, err error) error {
	cerr := &ContractError{Op: cl.op, Err: err}
	c.logFailure(cl, c.endpoint(cl), 0, cerr)
	return cerr
}

// getJSON issues a GET and decodes the body into a T.
func getJSON[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var zero T
	cl.method = http.MethodGet
	resp, err := c.do(ctx, cl)
	if err != nil {
		return zero, err
	}
	v, err := decode[T](resp.Body)
	if err != nil {
		return zero, c.contractFailure(cl, err)
	}
	return v, nil
}

// decode unmarshals body, rejecting an empty or null payload.
func decode[T any](body []byte) (T, error) {
	var v T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return v, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
