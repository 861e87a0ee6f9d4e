// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/client"
	"codeberg.org/emojife/emojife/core"
	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/server/request_context"
	"codeberg.org/emojife/emojife/server/utils"
	"codeberg.org/emojife/emojife/views"
)

// internalBaseURL is the host the grid partial addresses the listing
// endpoint on. Requests to it are served in-process and never dialed.
const internalBaseURL = "http://emojife.internal"

// Handlers serves the routes backed by an emoji catalog.
type Handlers struct {
	catalog *core.Catalog

	// client loads listings for server-rendered fragments through the same
	// JSON endpoint browsers use.
	client *client.Client
}

// NewHandlers returns Handlers listing emoji through catalog.
func NewHandlers(catalog *core.Catalog) *Handlers {
	h := &Handlers{catalog: catalog}

	api := http.NewServeMux()
	api.HandleFunc("GET "+client.APIPath+"{category}", recordUpstreamError(h.EmojisAPI))

	h.client = client.New(internalBaseURL, &http.Client{
		Transport: client.HandlerTransport{Handler: api},
	})

	return h
}

// recordUpstreamError adapts a fallible handler for the in-process API mux.
// The handler has already written its JSON error body, so the error is only
// stored on the request context of the page that triggered the call.
func recordUpstreamError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			request_context.FromRequest(r).UpstreamError = err
		}
	}
}

type invalidCategoryBody struct {
	Error            string `json:"error"`
	ReceivedCategory string `json:"receivedCategory"`
}

type failureBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// EmojisAPI is the handler for /api/emojis/{category}.
//
// Every failure is answered with a JSON error body; the error is still
// returned so that it is recorded against the request.
func (h *Handlers) EmojisAPI(w http.ResponseWriter, r *http.Request) error {
	raw := utils.GetPathVar(r, "category")

	listing, err := h.catalog.List(r.Context(), raw)
	if err != nil {
		status, body := errorResponse(err)

		log.Warn().
			Err(err).
			Str("category", raw).
			Int("status_code", status).
			Msg("Failed to list emojis")

		if werr := writeJSON(w, status, body); werr != nil {
			return werr
		}

		return err
	}

	return writeJSON(w, http.StatusOK, listing)
}

// errorResponse maps a catalog error to a status code and JSON body.
func errorResponse(err error) (int, any) {
	var (
		invalid   *category.InvalidCategoryError
		malformed *core.MalformedResponseError
	)

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalidCategoryBody{
			Error:            "Invalid category",
			ReceivedCategory: invalid.Received,
		}
	case errors.As(err, &malformed):
		return http.StatusInternalServerError, failureBody{
			Error:   "Unexpected GitHub API response",
			Details: malformed.Error(),
		}
	default:
		// Upstream statuses and network failures.
		return http.StatusInternalServerError, failureBody{
			Error:   "Failed to fetch emojis",
			Details: err.Error(),
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// EmojisPartial is the handler for /partials/emojis/{category}. It renders
// the settled grid for a category as an HTML fragment.
func (h *Handlers) EmojisPartial(w http.ResponseWriter, r *http.Request) error {
	c, err := category.Lookup(category.Normalize(utils.GetPathVar(r, "category")))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)

		return err
	}

	state := h.client.Fetch(r.Context(), c.Folder)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.EmojiGrid(state).Render(r.Context(), w)
}
