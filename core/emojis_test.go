// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/emojife/emojife/core"
	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/core/requests"
)

const (
	testOwner = "insertfahim"
	testRepo  = "Telegram-Animated-Emojis"
)

// upstream records the requests it receives and answers each with a fixed status and body.
type upstream struct {
	mu       sync.Mutex
	uris     []string
	auth     []string
	accept   []string
	status   int
	body     string
	rlHeader bool
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.uris = append(u.uris, r.URL.EscapedPath())
	u.auth = append(u.auth, r.Header.Get("Authorization"))
	u.accept = append(u.accept, r.Header.Get("Accept"))
	u.mu.Unlock()

	if u.rlHeader {
		w.Header().Set("X-Ratelimit-Remaining", "59")
		w.Header().Set("X-Ratelimit-Limit", "60")
		w.Header().Set("X-Ratelimit-Reset", "1700000000")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(u.status)
	_, _ = w.Write([]byte(u.body))
}

func newCatalog(t *testing.T, u *upstream, token string) *core.Catalog {
	t.Helper()

	srv := httptest.NewServer(u)
	t.Cleanup(srv.Close)

	client := requests.NewClient(requests.Options{
		BaseURL:    srv.URL,
		Token:      token,
		HTTPClient: srv.Client(),
	})

	return core.NewCatalog(client, testOwner, testRepo, ".webp")
}

func TestCatalogListFiltersByExtension(t *testing.T) {
	t.Parallel()

	u := &upstream{
		status:   http.StatusOK,
		rlHeader: true,
		body: `[
			{"name":"a.webp","download_url":"https://raw.example/a.webp"},
			{"name":"b.png","download_url":"https://raw.example/b.png"},
			{"name":"c.webp","download_url":"https://raw.example/c.webp"},
			{"download_url":"https://raw.example/nameless.webp"},
			{"name":"d.webp"}
		]`,
	}

	listing, err := newCatalog(t, u, "").List(t.Context(), "smileys")
	require.NoError(t, err)

	assert.Equal(t, "Smileys", listing.Category)
	assert.Equal(t, []core.EmojiAsset{
		{Name: "a", DownloadURL: "https://raw.example/a.webp"},
		{Name: "c", DownloadURL: "https://raw.example/c.webp"},
		{Name: "d", DownloadURL: ""},
	}, listing.Emojis)

	assert.Equal(t, requests.RateLimit{
		Remaining:    "59",
		Limit:        "60",
		Reset:        "1700000000",
		IsUsingToken: false,
	}, listing.RateLimit)
}

func TestCatalogListEmptyFolder(t *testing.T) {
	t.Parallel()

	u := &upstream{status: http.StatusOK, body: `[{"name":"README.md","download_url":"x"}]`}

	listing, err := newCatalog(t, u, "").List(t.Context(), "flags")
	require.NoError(t, err)

	require.NotNil(t, listing.Emojis)
	assert.Empty(t, listing.Emojis)
	assert.Empty(t, listing.RateLimit.Remaining)
	assert.Empty(t, listing.RateLimit.Limit)
	assert.False(t, listing.RateLimit.IsUsingToken)
}

func TestCatalogListEscapesFolder(t *testing.T) {
	t.Parallel()

	u := &upstream{status: http.StatusOK, body: `[]`}
	catalog := newCatalog(t, u, "")

	for _, raw := range []string{"food-and-drink", "Food%20and%20Drink", "  FOOD AND DRINK  ", "food and drink"} {
		listing, err := catalog.List(t.Context(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "Food and Drink", listing.Category, raw)
	}

	require.Len(t, u.uris, 4)

	for _, uri := range u.uris {
		assert.Equal(t, "/repos/insertfahim/Telegram-Animated-Emojis/contents/Food%20and%20Drink", uri)
	}
}

func TestCatalogListInvalidCategory(t *testing.T) {
	t.Parallel()

	u := &upstream{status: http.StatusOK, body: `[]`}

	_, err := newCatalog(t, u, "").List(t.Context(), "Unknown%20Stuff")

	var invalid *category.InvalidCategoryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "unknown stuff", invalid.Received)
	assert.Empty(t, u.uris, "no upstream request for an invalid category")
}

func TestCatalogListUpstreamErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx status", func(t *testing.T) {
		t.Parallel()

		u := &upstream{
			status:   http.StatusForbidden,
			rlHeader: true,
			body:     `{"message":"API rate limit exceeded"}`,
		}

		_, err := newCatalog(t, u, "").List(t.Context(), "people")

		var upstreamErr *core.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusForbidden, upstreamErr.StatusCode)
		assert.Equal(t, "API rate limit exceeded", upstreamErr.Message)
		assert.Equal(t, "59", upstreamErr.RateLimit.Remaining)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("object instead of array", func(t *testing.T) {
		t.Parallel()

		u := &upstream{status: http.StatusOK, body: `{"message":"not a directory"}`}

		_, err := newCatalog(t, u, "").List(t.Context(), "objects")

		var malformed *core.MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "Expected an array of files", err.Error())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		u := &upstream{status: http.StatusOK, body: `[{"name":`}

		_, err := newCatalog(t, u, "").List(t.Context(), "objects")

		var malformed *core.MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestCatalogListNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := requests.NewClient(requests.Options{BaseURL: baseURL})

	_, err := core.NewCatalog(client, testOwner, testRepo, ".webp").List(t.Context(), "symbols")

	var netErr *core.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotEmpty(t, netErr.Error())
	assert.NotNil(t, errors.Unwrap(netErr))
}

func TestCatalogListSendsCredential(t *testing.T) {
	t.Parallel()

	withToken := &upstream{status: http.StatusOK, body: `[]`}
	_, err := newCatalog(t, withToken, "secret").List(t.Context(), "activity")
	require.NoError(t, err)

	withoutToken := &upstream{status: http.StatusOK, body: `[]`}
	_, err = newCatalog(t, withoutToken, "").List(t.Context(), "activity")
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer secret"}, withToken.auth)
	assert.Equal(t, []string{""}, withoutToken.auth)
	assert.Equal(t, []string{"application/vnd.github.v3+json"}, withToken.accept)
	assert.Equal(t, []string{"application/vnd.github.v3+json"}, withoutToken.accept)
}
