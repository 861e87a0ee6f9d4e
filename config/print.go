// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// redacted returns a shallow copy of cfg that is safe to print.
func (cfg *ServerConfig) redacted() ServerConfig {
	printable := *cfg

	if printable.Upstream.Token != "" {
		printable.Upstream.Token = redactedValue
	}

	return printable
}

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("cacheid", cfg.Instance.FileServerCacheID).
		Bool("github_token", cfg.UsingToken()).
		Msg("Starting EmojiFE")

	configYAML, err := yaml.MarshalWithOptions(cfg.redacted(), GetDurationEncoderOption())
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
