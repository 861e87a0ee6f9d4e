// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/core/requests"
)

// EmojiAsset is one image in a category folder.
type EmojiAsset struct {
	// Name is the file name without its image extension.
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// Listing is the filtered content of one category folder.
type Listing struct {
	// Category is the resolved upstream folder name.
	Category  string             `json:"category"`
	Emojis    []EmojiAsset       `json:"emojis"`
	RateLimit requests.RateLimit `json:"rateLimit"`
}

// UpstreamError is returned when the upstream answered with a non-2xx status.
type UpstreamError struct {
	StatusCode int

	// Message is the upstream's own explanation, if it gave one.
	Message   string
	RateLimit requests.RateLimit
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GitHub API responded with status %d", e.StatusCode)
}

// MalformedResponseError is returned when a successful response is not a
// JSON array of directory entries.
type MalformedResponseError struct {
	RateLimit requests.RateLimit
}

func (e *MalformedResponseError) Error() string {
	return "Expected an array of files"
}

// NetworkError is returned when no upstream response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Catalog lists emoji folders of a single upstream repository.
type Catalog struct {
	client    *requests.Client
	owner     string
	repo      string
	extension string
}

// NewCatalog returns a Catalog reading owner/repo through client. Only files
// ending in extension (for example ".webp") are listed.
func NewCatalog(client *requests.Client, owner, repo, extension string) *Catalog {
	return &Catalog{
		client:    client,
		owner:     owner,
		repo:      repo,
		extension: extension,
	}
}

// ContentsPath returns the API path of a folder's directory listing.
func (c *Catalog) ContentsPath(folder string) string {
	return "repos/" + url.PathEscape(c.owner) + "/" + url.PathEscape(c.repo) + "/contents/" + url.PathEscape(folder)
}

// List resolves raw, a category as received in a URL, and returns the
// matching assets in upstream order.
//
// Errors are *category.InvalidCategoryError, *UpstreamError,
// *MalformedResponseError or *NetworkError.
func (c *Catalog) List(ctx context.Context, raw string) (*Listing, error) {
	normalized := category.Normalize(raw)

	folder, err := category.Resolve(normalized)

	log.Debug().
		Str("category", normalized).
		Str("folder", folder).
		Msg("Resolving emoji category")

	if err != nil {
		return nil, err
	}

	if c.client.UsingToken() {
		log.Debug().Msg("Found GitHub token in configuration")
	} else {
		log.Debug().Msg("No GitHub token configured, using the unauthenticated quota")
	}

	resp, err := c.client.GetJSON(ctx, c.ContentsPath(folder))
	if resp != nil {
		logRateLimit(resp.RateLimit)
	}

	if err != nil {
		var apiErr *requests.APIError

		switch {
		case errors.As(err, &apiErr):
			return nil, &UpstreamError{
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Message,
				RateLimit:  resp.RateLimit,
			}
		case resp != nil:
			// A 2xx response that failed to parse.
			return nil, &MalformedResponseError{RateLimit: resp.RateLimit}
		default:
			return nil, &NetworkError{Err: err}
		}
	}

	entries := gjson.ParseBytes(resp.Body)
	if !entries.IsArray() {
		return nil, &MalformedResponseError{RateLimit: resp.RateLimit}
	}

	listing := &Listing{
		Category:  folder,
		Emojis:    []EmojiAsset{},
		RateLimit: resp.RateLimit,
	}

	entries.ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name")
		if name.Type != gjson.String || !strings.HasSuffix(name.Str, c.extension) {
			return true
		}

		listing.Emojis = append(listing.Emojis, EmojiAsset{
			Name:        strings.TrimSuffix(name.Str, c.extension),
			DownloadURL: entry.Get("download_url").String(),
		})

		return true
	})

	return listing, nil
}

func logRateLimit(rl requests.RateLimit) {
	event := log.Info().
		Str("remaining", rl.Remaining).
		Str("limit", rl.Limit)

	if reset, ok := rl.ResetTime(); ok {
		event.Time("reset", reset.In(time.Local))
	} else {
		event.Str("reset", rl.Reset)
	}

	status := "No token in use"
	if rl.IsUsingToken {
		status = "Using token"
	}

	event.Str("token_status", status).Msg("GitHub API rate limit")
}
