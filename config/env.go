// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// readEnv overrides fields with the environment variables named in their env tags.
//
// Unset variables leave the current (default or YAML) value untouched.
// Slice values are comma separated.
func (cfg *ServerConfig) readEnv() error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	return nil
}
