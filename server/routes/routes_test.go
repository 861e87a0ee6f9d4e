// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"codeberg.org/emojife/emojife/client"
	"codeberg.org/emojife/emojife/config"
	"codeberg.org/emojife/emojife/core"
	"codeberg.org/emojife/emojife/core/requests"
	"codeberg.org/emojife/emojife/server/request_context"
	"codeberg.org/emojife/emojife/server/routes"
)

func TestMain(m *testing.M) {
	config.Global.SetDefaults()

	os.Exit(m.Run())
}

const smileysListing = `[
	{"name": "Grinning Face.webp", "download_url": "https://raw.example/Smileys/Grinning%20Face.webp"},
	{"name": "README.md", "download_url": "https://raw.example/Smileys/README.md"},
	{"name": "Winking Face.webp", "download_url": "https://raw.example/Smileys/Winking%20Face.webp"}
]`

// newHandlers returns Handlers backed by an upstream answering every request
// with status and body, and a counter of upstream calls.
func newHandlers(t *testing.T, status int, body string) (*routes.Handlers, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		w.Header().Set("X-Ratelimit-Remaining", "59")
		w.Header().Set("X-Ratelimit-Limit", "60")
		w.Header().Set("X-Ratelimit-Reset", "1700000000")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	rc := requests.NewClient(requests.Options{BaseURL: upstream.URL})
	catalog := core.NewCatalog(rc, "insertfahim", "Telegram-Animated-Emojis", ".webp")

	return routes.NewHandlers(catalog), &calls
}

type fallible = func(http.ResponseWriter, *http.Request) error

// serve routes target through a mux so that path values are populated.
func serve(t *testing.T, pattern string, handler fallible, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec, _ := serveWithContext(t, pattern, handler, target)

	return rec
}

// serveWithContext is serve that also returns the request context the handler ran with.
func serveWithContext(t *testing.T, pattern string, handler fallible, target string) (*httptest.ResponseRecorder, *request_context.RequestContext) {
	t.Helper()

	var rc *request_context.RequestContext

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(request_context.WithRequestContext(r.Context(), r))
		rc = request_context.FromRequest(r)
		_ = handler(w, r)
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec, rc
}

func TestEmojisAPI(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		upstreamStatus int
		upstreamBody   string
		target         string
		wantStatus     int
		wantBody       string
		wantUpstream   int32
	}{
		{
			name:           "success",
			upstreamStatus: http.StatusOK,
			upstreamBody:   smileysListing,
			target:         "/api/emojis/smileys",
			wantStatus:     http.StatusOK,
			wantBody: `{
				"category": "Smileys",
				"emojis": [
					{"name": "Grinning Face", "download_url": "https://raw.example/Smileys/Grinning%20Face.webp"},
					{"name": "Winking Face", "download_url": "https://raw.example/Smileys/Winking%20Face.webp"}
				],
				"rateLimit": {"remaining": "59", "limit": "60", "reset": "1700000000", "isUsingToken": false}
			}`,
			wantUpstream: 1,
		},
		{
			name:           "empty folder",
			upstreamStatus: http.StatusOK,
			upstreamBody:   `[]`,
			target:         "/api/emojis/food%20and%20drink",
			wantStatus:     http.StatusOK,
			wantBody: `{
				"category": "Food and Drink",
				"emojis": [],
				"rateLimit": {"remaining": "59", "limit": "60", "reset": "1700000000", "isUsingToken": false}
			}`,
			wantUpstream: 1,
		},
		{
			name:           "invalid category",
			upstreamStatus: http.StatusOK,
			upstreamBody:   `[]`,
			target:         "/api/emojis/Vegetables",
			wantStatus:     http.StatusBadRequest,
			wantBody:       `{"error": "Invalid category", "receivedCategory": "vegetables"}`,
			wantUpstream:   0,
		},
		{
			name:           "upstream error",
			upstreamStatus: http.StatusForbidden,
			upstreamBody:   `{"message": "API rate limit exceeded"}`,
			target:         "/api/emojis/flags",
			wantStatus:     http.StatusInternalServerError,
			wantBody:       `{"error": "Failed to fetch emojis", "details": "GitHub API responded with status 403"}`,
			wantUpstream:   1,
		},
		{
			name:           "upstream object",
			upstreamStatus: http.StatusOK,
			upstreamBody:   `{"name": "Smileys", "type": "dir"}`,
			target:         "/api/emojis/smileys",
			wantStatus:     http.StatusInternalServerError,
			wantBody:       `{"error": "Unexpected GitHub API response", "details": "Expected an array of files"}`,
			wantUpstream:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, calls := newHandlers(t, tc.upstreamStatus, tc.upstreamBody)

			rec := serve(t, "GET /api/emojis/{category}", h.EmojisAPI, tc.target)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
			assert.Equal(t, tc.wantUpstream, calls.Load())
		})
	}
}

func TestEmojisAPINetworkFailure(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.NotFoundHandler())
	upstream.Close()

	rc := requests.NewClient(requests.Options{BaseURL: upstream.URL})
	h := routes.NewHandlers(core.NewCatalog(rc, "o", "r", ".webp"))

	rec := serve(t, "GET /api/emojis/{category}", h.EmojisAPI, "/api/emojis/smileys")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch emojis", gjson.Get(rec.Body.String(), "error").String())
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "details").String())
}

func TestEmojisPartial(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		upstreamStatus int
		upstreamBody   string
		wantStatus     string
		wantTiles      int
		wantMessage    string
		wantAPIError   bool
	}{
		{"success", http.StatusOK, smileysListing, "success", 2, "", false},
		{"empty", http.StatusOK, `[{"name": "README.md"}]`, "empty", 0, client.MessageEmpty, false},
		{"upstream error", http.StatusBadGateway, ``, "error", 0, client.MessageFailed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newHandlers(t, tc.upstreamStatus, tc.upstreamBody)

			rec, rc := serveWithContext(t, "GET /partials/emojis/{category}", h.EmojisPartial, "/partials/emojis/smileys")
			require.Equal(t, http.StatusOK, rec.Code)

			// A failed listing is rendered, not returned, but stays on the request.
			if tc.wantAPIError {
				var upstreamErr *core.UpstreamError

				require.ErrorAs(t, rc.UpstreamError, &upstreamErr)
				assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
			} else {
				assert.NoError(t, rc.UpstreamError)
			}

			doc, err := goquery.NewDocumentFromReader(rec.Body)
			require.NoError(t, err)

			grid := doc.Find("section.emoji-grid")
			assert.Equal(t, tc.wantStatus, grid.AttrOr("data-status", ""))
			assert.Equal(t, "Smileys", grid.AttrOr("data-category", ""))
			assert.Equal(t, tc.wantTiles, grid.Find("img").Length())

			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, strings.TrimSpace(grid.Find("p.status").Text()))
			}
		})
	}
}

func TestEmojisPartialInvalidCategory(t *testing.T) {
	t.Parallel()

	h, calls := newHandlers(t, http.StatusOK, `[]`)

	rec := serve(t, "GET /partials/emojis/{category}", h.EmojisPartial, "/partials/emojis/vegetables")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, calls.Load())
}

func TestCategoryPage(t *testing.T) {
	t.Parallel()

	rec := serve(t, "GET /category/{category}", routes.CategoryPage, "/category/food-and-drink")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, "Food and Drink", doc.Find("h1").Text())
	assert.Equal(t, "loading", doc.Find("#emoji-grid").AttrOr("data-status", ""))
	assert.Equal(t, "/partials/emojis/food%20and%20drink", doc.Find("#emoji-grid").AttrOr("data-src", ""))
}

func TestCategoryPageUnknown(t *testing.T) {
	t.Parallel()

	rec := serve(t, "GET /category/{category}", routes.CategoryPage, "/category/vegetables")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexPageShowsDefaultCategory(t *testing.T) {
	t.Parallel()

	rec := serve(t, "GET /{$}", routes.IndexPage, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, config.Global.Instance.DefaultCategory, doc.Find("#emoji-grid").AttrOr("data-category", ""))
}

func TestAboutPage(t *testing.T) {
	t.Parallel()

	rec := serve(t, "GET /about", routes.AboutPage, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insertfahim/Telegram-Animated-Emojis")
	assert.Contains(t, rec.Body.String(), config.BuildVersion)
}
