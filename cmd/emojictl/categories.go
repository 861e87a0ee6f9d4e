// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codeberg.org/emojife/emojife/core/category"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Prints every category with its slug.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, c := range category.All() {
				fmt.Fprintf(tw, "%s\t%s\n", c.Folder, c.Slug)
			}

			return tw.Flush()
		},
	}
}
