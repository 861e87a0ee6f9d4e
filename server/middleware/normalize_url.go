// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL redirects paths with a trailing slash (except root) to the
// path without it.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes the trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL

	target.Path = strings.TrimRight(target.Path, "/")
	if target.RawPath != "" {
		target.RawPath = strings.TrimRight(target.RawPath, "/")
	}

	// Collapse to root; a bare "//host" would otherwise read as a scheme-relative URL.
	if target.Path == "" {
		target.Path = "/"
		target.RawPath = ""
	}

	target.Scheme = ""
	target.Host = ""

	http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
}
