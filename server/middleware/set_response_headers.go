// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/emojife/emojife/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Emojife-Version and Emojife-Revision are added dynamically in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(defaultPermissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join([]string{
			"base-uri 'self'",
			"default-src 'self'",
			"style-src 'self'",
			"script-src 'self'",
			"connect-src 'self'",
			// Emoji images are served by the upstream's raw file host.
			"img-src 'self' data: https:",
			"form-action 'self'",
			"frame-ancestors 'none'",
		}, "; ") + ";"},
	}

	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r.URL.Path)

	headers.Set("Emojife-Version", config.BuildVersion)
	headers.Set("Emojife-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

var firstDevResponse atomic.Bool

// invalidateCacheInDevelopment clears the browser cache on the first response after a restart.
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse.CompareAndSwap(false, true) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}
}

// setCacheControl sets cache control headers by path.
func setCacheControl(headers http.Header, path string) {
	// Default to only storing in the browser cache and forcing revalidation
	cacheDuration := "private, no-cache"

	switch {
	// Upstream listings change rarely but are fetched on every visit; keep them briefly.
	case strings.HasPrefix(path, "/api/"), strings.HasPrefix(path, "/partials/"):
		cacheDuration = "private, max-age=60"

	// JavaScript and CSS get a moderate cache time (1 week), busted by the cache ID.
	case strings.HasPrefix(path, "/js/"), strings.HasPrefix(path, "/css/"):
		cacheDuration = "max-age=604800"

	// Images can be cached for 2 weeks
	case strings.HasPrefix(path, "/img/"):
		cacheDuration = "max-age=1209600"

	// Text files (robots.txt) get moderate caching (1 day)
	case strings.HasSuffix(path, ".txt"):
		cacheDuration = "max-age=86400"
	}

	headers.Set("Cache-Control", cacheDuration)
}
