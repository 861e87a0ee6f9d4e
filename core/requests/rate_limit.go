// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"net/http"
	"strconv"
	"time"
)

// Upstream rate-limit header names.
const (
	HeaderRateLimitRemaining = "X-Ratelimit-Remaining"
	HeaderRateLimitLimit     = "X-Ratelimit-Limit"
	HeaderRateLimitReset     = "X-Ratelimit-Reset"
)

// unauthenticatedLimit is the hourly quota the upstream grants anonymous callers.
// Any larger limit implies that a credential was accepted.
const unauthenticatedLimit = 60

// RateLimit is a read-only snapshot of the upstream quota taken from one response.
//
// Values are the raw header strings and are empty when the header was absent.
type RateLimit struct {
	Remaining    string `json:"remaining"`
	Limit        string `json:"limit"`
	Reset        string `json:"reset"`
	IsUsingToken bool   `json:"isUsingToken"`
}

// RateLimitFromHeader snapshots the rate-limit headers of a response.
func RateLimitFromHeader(h http.Header) RateLimit {
	rl := RateLimit{
		Remaining: h.Get(HeaderRateLimitRemaining),
		Limit:     h.Get(HeaderRateLimitLimit),
		Reset:     h.Get(HeaderRateLimitReset),
	}

	if limit, err := strconv.Atoi(rl.Limit); err == nil {
		rl.IsUsingToken = limit > unauthenticatedLimit
	}

	return rl
}

// ResetTime converts the reset header, in Unix seconds, to a time.
func (rl RateLimit) ResetTime() (time.Time, bool) {
	seconds, err := strconv.ParseInt(rl.Reset, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(seconds, 0), true
}
