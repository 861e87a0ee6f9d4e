// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/core/audit"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host       string `env:"EMOJIFE_HOST"       yaml:"host"`
		Port       string `env:"EMOJIFE_PORT"       yaml:"port"`
		UnixSocket string `env:"EMOJIFE_UNIXSOCKET" yaml:"unixSocket"`
	} `yaml:"basic"`

	// Upstream describes the content-listing API the emoji folders are read from.
	Upstream struct {
		BaseURL string `env:"EMOJIFE_UPSTREAM_URL"   yaml:"baseUrl"`
		Owner   string `env:"EMOJIFE_UPSTREAM_OWNER" yaml:"owner"`
		Repo    string `env:"EMOJIFE_UPSTREAM_REPO"  yaml:"repo"`
		// Token is optional. Without it the upstream applies its unauthenticated quota.
		Token          string        `env:"GITHUB_TOKEN"              yaml:"token"`
		Timeout        time.Duration `env:"EMOJIFE_UPSTREAM_TIMEOUT"  yaml:"timeout"`
		ImageExtension string        `env:"EMOJIFE_IMAGE_EXTENSION"   yaml:"imageExtension"`
		UserAgent      string        `env:"EMOJIFE_USER_AGENT"        yaml:"userAgent"`
	} `yaml:"upstream"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"EMOJIFE_REPO_URL"         yaml:"repoUrl"`
		DefaultCategory   string `env:"EMOJIFE_DEFAULT_CATEGORY" yaml:"defaultCategory"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment        bool   `env:"EMOJIFE_DEV"                    yaml:"inDevelopment"`
		SaveResponses        bool   `env:"EMOJIFE_SAVE_RESPONSES"         yaml:"saveResponses"`
		ResponseSaveLocation string `env:"EMOJIFE_RESPONSE_SAVE_LOCATION" yaml:"responseSaveLocation"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"EMOJIFE_LOG_LEVEL"   yaml:"logLevel"`
		Outputs []string `env:"EMOJIFE_LOG_OUTPUTS" yaml:"logOutputs"`
		Format  string   `env:"EMOJIFE_LOG_FORMAT"  yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled    bool     `env:"EMOJIFE_LIMITER"             yaml:"enabled"`
		Rate       float64  `env:"EMOJIFE_LIMITER_RATE"        yaml:"rate"`
		Burst      int      `env:"EMOJIFE_LIMITER_BURST"       yaml:"burst"`
		PassIPs    []string `env:"EMOJIFE_LIMITER_PASS_IPS"    yaml:"passList"`
		IPv4Prefix int      `env:"EMOJIFE_LIMITER_IPV4_PREFIX" yaml:"ipv4Prefix"`
		IPv6Prefix int      `env:"EMOJIFE_LIMITER_IPV6_PREFIX" yaml:"ipv6Prefix"`
	} `yaml:"limiter"`

	Internationalization struct {
		// When enabled, missing keys are logged once per locale+key and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"EMOJIFE_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from the file named by the -config flag
// or EMOJIFE_CONFIGFILE, then the environment.
func (cfg *ServerConfig) LoadConfig() error {
	flagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	// Precedence: -config flag, EMOJIFE_CONFIGFILE, then the flag default
	// with a fallback to ./config.yml.
	configFilePath := flagValue

	if !configFlagUserSet {
		if envVar := os.Getenv("EMOJIFE_CONFIGFILE"); envVar != "" {
			configFilePath = envVar
		} else if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	if err := cfg.Load(configFilePath); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	if isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// Load populates cfg from defaults, the YAML file at configFilePath (if any)
// and the environment, then validates the result.
//
// Unlike LoadConfig it does not touch flags or the global logger.
func (cfg *ServerConfig) Load(configFilePath string) error {
	cfg.SetDefaults()
	cfg.Build.load()

	cfg.Instance.FileServerCacheID = audit.NewRequestID()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := cfg.readEnv(); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

// UsingToken reports whether an upstream credential is configured.
func (cfg *ServerConfig) UsingToken() bool {
	return cfg.Upstream.Token != ""
}

var staticSkippedPathPrefixes = []string{"/img/", "/css/", "/js/"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file, read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
