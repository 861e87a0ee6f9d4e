// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/emojife/emojife/client"
)

var errLoadFailed = errors.New("failed to load emojis")

func newListCmd() *cobra.Command {
	var urls bool

	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "Prints the emoji names of a category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := fetch(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if state.Status == client.StatusEmpty {
				fmt.Fprintln(out, state.Message)

				return nil
			}

			for _, emoji := range state.Emojis {
				if urls {
					fmt.Fprintf(out, "%s\t%s\n", emoji.Name, emoji.DownloadURL)
				} else {
					fmt.Fprintln(out, emoji.Name)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&urls, "urls", "u", false, "Also print download URLs.")

	return cmd
}

// fetch loads display through the instance and turns an error state into an error.
func fetch(cmd *cobra.Command, display string) (client.State, error) {
	state := newClient().Fetch(cmd.Context(), display)

	if state.Status == client.StatusError {
		return state, fmt.Errorf("%w: %s", errLoadFailed, state.Message)
	}

	return state, nil
}
