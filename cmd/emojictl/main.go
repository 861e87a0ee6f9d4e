// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Command emojictl lists and downloads emojis through a running EmojiFE instance.

	emojictl categories
	emojictl list "Food & Drink"
	emojictl download smileys -o ./smileys --rate 5
*/
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/emojife/emojife/client"
	"codeberg.org/emojife/emojife/core/audit"
)

// Flag variables.
var (
	serverURL string
	timeout   time.Duration
	verbose   bool
)

func main() {
	audit.SetDefaultLogger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "emojictl",
		Short:         "Lists and downloads animated emojis through an EmojiFE instance.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	root.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8383",
		"Base URL of the EmojiFE instance.")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 30*time.Second,
		"Timeout for each HTTP request.")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug output.")

	root.AddCommand(newCategoriesCmd(), newListCmd(), newDownloadCmd())

	return root
}

func httpClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

func newClient() *client.Client {
	return client.New(serverURL, httpClient())
}
