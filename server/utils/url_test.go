// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/emojife/emojife/server/utils"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		expected string
	}{
		{"Valid URL", "https://api.github.com", false, "https://api.github.com"},
		{"Valid URL with path", "https://example.com/api/v3", false, "https://example.com/api/v3"},
		{"Missing scheme", "example.com", true, ""},
		{"Missing host", "https://", true, ""},
		{"Trailing slash", "https://example.com/", false, "https://example.com"},
		{"Empty URL", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := utils.ParseURL(tt.urlStr, "Test")
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			if assert.NoError(t, err) {
				assert.Equal(t, tt.expected, got.String())
			}
		})
	}
}

func TestGetPathVar(t *testing.T) {
	t.Parallel()

	var got, fallback string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /category/{category}", func(w http.ResponseWriter, r *http.Request) {
		got = utils.GetPathVar(r, "category")
		fallback = utils.GetPathVar(r, "missing", "smileys")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/category/flags", nil))

	assert.Equal(t, "flags", got)
	assert.Equal(t, "smileys", fallback)
}
