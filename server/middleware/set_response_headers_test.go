// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetResponseHeaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path      string
		wantCache string
	}{
		{"/", "private, no-cache"},
		{"/api/emojis/smileys", "private, max-age=60"},
		{"/partials/emojis/smileys", "private, max-age=60"},
		{"/js/emojis.js", "max-age=604800"},
		{"/css/style.css", "max-age=604800"},
		{"/img/favicon.svg", "max-age=1209600"},
		{"/robots.txt", "max-age=86400"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			Wrap(SetResponseHeaders, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.wantCache, rr.Header().Get("Cache-Control"))
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:")
			assert.NotEmpty(t, rr.Header().Get("Emojife-Version"))
		})
	}
}
