// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/emojife/emojife/i18n"
	"codeberg.org/emojife/emojife/server/request_context"
)

// RequestIDHeader echoes the request ID so users can quote it in bug reports.
const RequestIDHeader = "X-Request-Id"

// WithRequestContext is a middleware that attaches a RequestContext to each
// HTTP request and remembers an explicit language choice.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := request_context.WithRequestContext(r.Context(), r)

	i18n.RememberChoice(w, r)

	w.Header().Set(RequestIDHeader, request_context.FromContext(ctx).RequestID)

	next.ServeHTTP(w, r.WithContext(ctx))
}
