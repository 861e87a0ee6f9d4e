// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/config"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit"
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
	HeaderRateLimitReset     string = "RateLimit-Reset"
)

// excludedPaths won't have traffic filtered by the limiter middleware.
var excludedPaths = []string{
	"/about",
	"/css/",
	"/img/",
	"/js/",
	"/robots.txt",
}

// Evaluate is the entrypoint to the limiter middleware.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !config.Global.Limiter.Enabled || isExcludedPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	defer DoCleanup()

	client, err := newClientInfo(r)
	if err != nil {
		// Unix socket peers and unparsable forwarded addresses have nothing to group by.
		log.Debug().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Limiter skipped request")
		next.ServeHTTP(w, r)

		return
	}

	if client.isPassListed() {
		next.ServeHTTP(w, r)

		return
	}

	client.limiter = getOrCreateLimiter(client.network.String())

	if blockReason := checkRateLimit(client.limiter); blockReason != "" {
		log.Warn().
			Str("ip", client.ip.String()).
			Str("network", client.network.String()).
			Str("reason", blockReason).
			Msg("Request blocked, exceeded rate limit")

		addRateLimitHeaders(w, client)
		writeTooManyRequests(w, r, blockReason)

		return
	}

	addRateLimitHeaders(w, client)
	next.ServeHTTP(w, r)
}

// writeTooManyRequests answers JSON routes with a JSON body and everything else with plain text.
func writeTooManyRequests(w http.ResponseWriter, r *http.Request, reason string) {
	w.Header().Set("Cache-Control", "no-store")

	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":` + strconv.Quote(reason) + `}`))

		return
	}

	http.Error(w, reason, http.StatusTooManyRequests)
}

// addRateLimitHeaders adds rate limiting information to the response headers.
func addRateLimitHeaders(w http.ResponseWriter, client *ClientInfo) {
	if client == nil || client.limiter == nil {
		return
	}

	client.limiter.mu.Lock()
	defer client.limiter.mu.Unlock()

	limiter := client.limiter.limiter

	currentTokens := limiter.TokensAt(timeNow())
	burst := limiter.Burst()
	limit := limiter.Limit()

	// Calculate tokens remaining (can't exceed burst).
	remaining := max(int(math.Min(float64(burst), currentTokens)), 0)

	// Calculate seconds until full bucket replenishment (if not already full).
	var resetTime int64

	if currentTokens < float64(burst) && limit > 0 {
		resetTime = int64(math.Ceil((float64(burst) - currentTokens) / float64(limit)))
	}

	resetStr := strconv.FormatInt(resetTime, 10)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))
	w.Header().Set(HeaderRateLimitReset, resetStr)

	// Retry-After is the wait for a single token, not a full bucket.
	if remaining <= 0 && limit > 0 {
		retryAfter := int64(math.Ceil((1 - currentTokens) / float64(limit)))
		w.Header().Set("Retry-After", strconv.FormatInt(max(retryAfter, 1), 10))
	}
}
