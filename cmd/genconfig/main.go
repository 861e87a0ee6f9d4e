// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Command genconfig writes example configuration files to deploy/ from the
configuration defaults.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/emojife/emojife/config"
	"codeberg.org/emojife/emojife/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/config.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755

	placeholderToken = "github_pat_0123456789abcdef"

	envFileHeader = `# EmojiFE configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# Every variable is optional. Without GITHUB_TOKEN, upstream requests are
# limited to the unauthenticated GitHub API quota.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# EmojiFE configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# Environment variables take precedence over values set here.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	proxySettingsComment = `
## Network proxy settings
## ref: https://pkg.go.dev/net/http#ProxyFromEnvironment
# HTTPS_PROXY=
# HTTP_PROXY=`

	tokenYAMLComment = `  # -- A GitHub personal access token. No scopes are needed to read public repositories.
  # ref: https://docs.github.com/en/rest/using-the-rest-api/rate-limits-for-the-rest-api`
)

func main() {
	audit.SetDefaultLogger()

	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	writeExample(envOutputFile, envExample(cfg))

	yamlContent, err := yamlExample(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	writeExample(yamlOutputFile, yamlContent)
}

func writeExample(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write example file")
	}

	log.Info().Str("path", path).Msg("Successfully generated example file")
}

// envExample renders the deploy/.env.example file for cfg.
func envExample(cfg *config.ServerConfig) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch envVarName {
			case "GITHUB_TOKEN":
				// Use a commented placeholder for the token.
				fmt.Fprintf(&sb, "# %s=\"%s\"\n", envVarName, placeholderToken)
			case "EMOJIFE_PORT", "EMOJIFE_HOST":
				// Uncomment essential fields.
				fmt.Fprintf(&sb, "%s=\"%v\"\n", envVarName, value.Interface())
			default:
				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, envValue(value))
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(proxySettingsComment) + "\n")

	return sb.String()
}

// envValue formats a default the way the environment parser reads it back.
// Empty strings are left blank to prompt user input.
func envValue(value reflect.Value) string {
	switch v := value.Interface().(type) {
	case []string:
		return strings.Join(v, ",")
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// yamlExample renders the deploy/config.yaml.example file for cfg with every
// setting commented out except the token.
func yamlExample(cfg *config.ServerConfig) (string, error) {
	withToken := *cfg
	withToken.Upstream.Token = placeholderToken

	var yamlContent strings.Builder

	encoderOpts := []yaml.EncodeOption{
		config.GetDurationEncoderOption(),
		yaml.Indent(2),
	}
	if err := yaml.NewEncoder(&yamlContent, encoderOpts...).Encode(withToken); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "basic:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		// Keep the token field and its special comments uncommented.
		if strings.HasPrefix(trimmed, "token:") {
			sb.WriteString(tokenYAMLComment + "\n")
			sb.WriteString(line + "\n")

			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
