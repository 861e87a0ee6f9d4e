// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/server/request_context"
	"codeberg.org/emojife/emojife/views"
)

// ErrorPage renders an error page.
//
// The caller is expected to have written the headers and status code already.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	ctx := request_context.FromRequest(r)

	pageData := views.ErrorData{
		Layout:     layoutData("Error"),
		Error:      ctx.RequestError,
		StatusCode: ctx.StatusCode,
		RequestID:  ctx.RequestID,
	}

	if err := views.Error(pageData).Render(r.Context(), w); err != nil {
		log.Err(err).Msg("Failed to render error page")
	}
}

// NotFound answers requests that matched no route.
func NotFound(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNotFound)

	return nil
}
