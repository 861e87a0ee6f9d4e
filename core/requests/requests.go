// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requests performs HTTP requests against the upstream listing API.

Every exchange is recorded as an audit.Span and the upstream rate-limit
headers are captured whether or not the request succeeded.
*/
package requests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"codeberg.org/emojife/emojife/core/audit"
	"codeberg.org/emojife/emojife/server/request_context"
	"codeberg.org/emojife/emojife/server/utils"
)

// githubMediaType pins the v3 representation of the contents API.
const githubMediaType = "application/vnd.github.v3+json"

var (
	errInvalidJSON      = errors.New("response contained invalid JSON")
	errAPIResponseError = errors.New("API response indicated error")
)

// APIError is returned when the upstream answered with a non-2xx status.
type APIError struct {
	// StatusCode is the HTTP status code from the response.
	StatusCode int

	// Message is the upstream's own error message, or the status text.
	Message string

	// Err is the underlying error cause.
	Err error
}

// Error returns a formatted error message including the status code and API message if available.
func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	fmt.Fprintf(&b, " (status code: %d)", e.StatusCode)

	return b.String()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Options configure a Client.
type Options struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Token is sent as a bearer credential when non-empty.
	Token string

	UserAgent string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// HTTPClient overrides the shared transport, mostly for tests.
	HTTPClient *http.Client
}

// Client talks to the upstream API. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = utils.NewHTTPClient(opts.Timeout)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		token:      opts.Token,
		userAgent:  opts.UserAgent,
	}
}

// UsingToken reports whether requests carry a bearer credential.
func (c *Client) UsingToken() bool {
	return c.token != ""
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RateLimit  RateLimit
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// URL joins path onto the client's base URL. path must already be escaped.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// Get performs a GET request for path and returns the response whatever its status.
//
// An error is only returned when no response was received.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.URL(path))
	if err != nil {
		return nil, err
	}

	return c.send(ctx, req)
}

// GetJSON performs a GET request for path and checks that the upstream
// answered with a 2xx status and a valid JSON document.
//
// The response is returned alongside *APIError so callers can still inspect
// its headers.
func (c *Client) GetJSON(ctx context.Context, path string) (*Response, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		// Prefer the upstream's message, falling back to the status text.
		message := gjson.GetBytes(resp.Body, "message").String()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		return resp, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Err:        errAPIResponseError,
		}
	}

	if !gjson.ValidBytes(resp.Body) {
		return resp, errInvalidJSON
	}

	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", githubMediaType)

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// send executes req, reads the body for auditing and snapshots the rate-limit headers.
func (c *Client) send(ctx context.Context, req *http.Request) (_ *Response, err error) {
	span := audit.Span{
		Destination: audit.ToGitHub,
		RequestID:   request_context.FromContext(ctx).RequestID + "-" + audit.NewRequestID(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	defer func() {
		span.Error = err
		span.End()
		span.Log()
	}()

	_ = span.Begin(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Body = body

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		RateLimit:  RateLimitFromHeader(resp.Header),
	}, nil
}

// IsContextCanceled returns true if the error is due to context cancellation or deadline exceeded.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
