// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/category/flags",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/category/flags/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/category/flags",
		},
		{
			name:             "Query parameters should be preserved",
			requestURL:       "/api/emojis/smileys/?lang=ja",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/emojis/smileys?lang=ja",
		},
		{
			name:             "Escaped segments should stay escaped",
			requestURL:       "/api/emojis/food%20and%20drink/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/api/emojis/food%20and%20drink",
		},
		{
			name:             "Repeated slashes collapse to root",
			requestURL:       "//",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			rr := httptest.NewRecorder()

			Wrap(NormalizeURL, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
		})
	}
}
