// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientURL(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{BaseURL: "https://api.github.com/"})

	assert.Equal(t, "https://api.github.com/repos/a/b", c.URL("repos/a/b"))
	assert.Equal(t, "https://api.github.com/repos/a/b", c.URL("/repos/a/b"))
}

func TestClientGetJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "array", status: http.StatusOK, body: `[]`},
		{name: "invalid JSON", status: http.StatusOK, body: `{`, wantErr: errInvalidJSON},
		{
			name:        "upstream message",
			status:      http.StatusNotFound,
			body:        `{"message":"Not Found"}`,
			wantErr:     errAPIResponseError,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not Found",
		},
		{
			name:        "status text fallback",
			status:      http.StatusBadGateway,
			body:        `<html></html>`,
			wantErr:     errAPIResponseError,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Bad Gateway",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(HeaderRateLimitRemaining, "10")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			resp, err := NewClient(Options{BaseURL: srv.URL}).GetJSON(t.Context(), "x")
			require.NotNil(t, resp)
			assert.Equal(t, "10", resp.RateLimit.Remaining)

			if tc.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.wantErr)

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tc.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestClientHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Token: "t0k", UserAgent: "EmojiFE/test"})
	assert.True(t, c.UsingToken())

	_, err := c.Get(t.Context(), "/")
	require.NoError(t, err)

	assert.Equal(t, githubMediaType, got.Get("Accept"))
	assert.Equal(t, "Bearer t0k", got.Get("Authorization"))
	assert.Equal(t, "EmojiFE/test", got.Get("User-Agent"))
}

func TestClientGetCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	resp, err := NewClient(Options{BaseURL: srv.URL}).Get(ctx, "x")
	assert.Nil(t, resp)
	assert.True(t, IsContextCanceled(err))
}
