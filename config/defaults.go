// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// DefaultUpstreamBaseURL is the GitHub REST API root.
	DefaultUpstreamBaseURL = "https://api.github.com"

	defaultUpstreamTimeout = 15 * time.Second

	// Inbound limiter defaults: 2 requests per second with bursts of 60.
	defaultLimiterRate  = 2.0
	defaultLimiterBurst = 60
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8383"

	cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	cfg.Upstream.Owner = "insertfahim"
	cfg.Upstream.Repo = "Telegram-Animated-Emojis"
	cfg.Upstream.Timeout = defaultUpstreamTimeout
	cfg.Upstream.ImageExtension = ".webp"
	cfg.Upstream.UserAgent = "EmojiFE/" + BuildVersion

	cfg.Instance.RepoURL = "https://github.com/insertfahim/Telegram-Animated-Emojis"
	cfg.Instance.DefaultCategory = "Smileys"

	cfg.Development.SaveResponses = false
	cfg.Development.ResponseSaveLocation = "/tmp/emojife/responses"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Internationalization.StrictMissingKeys = false
}
