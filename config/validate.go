// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/server/utils"
)

// validation errors.
var (
	errMissingUpstreamOwner   = errors.New("upstream.owner cannot be empty")
	errMissingUpstreamRepo    = errors.New("upstream.repo cannot be empty")
	errInvalidUpstreamTimeout = errors.New("upstream.timeout must be positive")
	errInvalidImageExtension  = errors.New("upstream.imageExtension must start with '.'")
	errInvalidDefaultCategory = errors.New("instance.defaultCategory is not a known category")
	errInvalidLogFormat       = errors.New("log.logFormat must be 'console' or 'json'")
	errInvalidLimiterRate     = errors.New("limiter.rate and limiter.burst must be positive")
	errInvalidIPv4Prefix      = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix      = errors.New("IPv6 prefix must be between 0 and 128")
)

// validateAndSet validates the server configuration and normalises some fields.
func (cfg *ServerConfig) validateAndSet() error {
	// A unix socket takes precedence over Host and Port.
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().Str("host", cfg.Basic.Host).Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8383"
			log.Info().Str("port", cfg.Basic.Port).Msg("Using default port")
		}
	}

	baseURL, err := utils.ParseURL(cfg.Upstream.BaseURL, "Upstream")
	if err != nil {
		return fmt.Errorf("invalid upstream URL: %w", err)
	}

	cfg.Upstream.BaseURL = baseURL.String()

	if strings.TrimSpace(cfg.Upstream.Owner) == "" {
		return errMissingUpstreamOwner
	}

	if strings.TrimSpace(cfg.Upstream.Repo) == "" {
		return errMissingUpstreamRepo
	}

	if cfg.Upstream.Timeout <= 0 {
		return errInvalidUpstreamTimeout
	}

	if !strings.HasPrefix(cfg.Upstream.ImageExtension, ".") {
		return errInvalidImageExtension
	}

	cfg.Upstream.Token = strings.TrimSpace(cfg.Upstream.Token)

	repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo")
	if err != nil {
		return fmt.Errorf("invalid repo URL: %w", err)
	}

	cfg.Instance.RepoURL = repoURL.String()

	if _, err := category.Resolve(category.FormatSlug(cfg.Instance.DefaultCategory)); err != nil {
		return fmt.Errorf("%w: %q", errInvalidDefaultCategory, cfg.Instance.DefaultCategory)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return errInvalidLogFormat
	}

	if !cfg.Limiter.Enabled {
		return nil
	}

	if cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0 {
		return errInvalidLimiterRate
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 {
		return errInvalidIPv4Prefix
	}

	if cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		return errInvalidIPv6Prefix
	}

	return nil
}
