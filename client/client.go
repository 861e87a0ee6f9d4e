// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/emojife/emojife/core"
	"codeberg.org/emojife/emojife/core/category"
)

// APIPath is the route prefix of the JSON listing endpoint.
const APIPath = "/api/emojis/"

var errNotOK = errors.New("listing endpoint returned a non-2xx status")

// Client requests listings from the JSON endpoint of an instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a Client for the instance at baseURL, for example
// "http://localhost:8383". A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// URL returns the listing URL for a display category such as "Food & Drink".
func (c *Client) URL(display string) string {
	return c.baseURL + APIPath + url.PathEscape(category.FormatSlug(display))
}

// Fetch performs one load for display and returns the settled state.
//
// Transport failures, non-2xx statuses and undecodable bodies all settle in
// StatusError with MessageFailed. A body carrying an "error" field settles in
// StatusError with that text.
func (c *Client) Fetch(ctx context.Context, display string) State {
	target := c.URL(display)

	log.Debug().Str("url", target).Msg("Fetching emojis")

	body, err := c.get(ctx, target)
	if err != nil {
		log.Warn().Err(err).Str("url", target).Msg("Error fetching emojis")

		return Failed(display, MessageFailed)
	}

	state, err := decode(display, body)
	if err != nil {
		log.Warn().Err(err).Str("url", target).Msg("Error decoding emojis")

		return Failed(display, MessageFailed)
	}

	return state
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", errNotOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

var errInvalidBody = errors.New("listing body is not a JSON object")

func decode(display string, body []byte) (State, error) {
	if !gjson.ValidBytes(body) {
		return State{}, errInvalidBody
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return State{}, errInvalidBody
	}

	if msg := doc.Get("error"); msg.Exists() && msg.String() != "" {
		return Failed(display, msg.String()), nil
	}

	var emojis []core.EmojiAsset

	if list := doc.Get("emojis"); list.IsArray() {
		list.ForEach(func(_, entry gjson.Result) bool {
			emojis = append(emojis, core.EmojiAsset{
				Name:        entry.Get("name").String(),
				DownloadURL: entry.Get("download_url").String(),
			})

			return true
		})
	}

	if len(emojis) == 0 {
		return State{Status: StatusEmpty, Category: display, Message: MessageEmpty}, nil
	}

	return State{Status: StatusSuccess, Category: display, Emojis: emojis}, nil
}
