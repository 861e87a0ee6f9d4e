// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package core lists emoji assets from the upstream repository and parses the
directory listing into structured data.

You may use this package independently as follows:

	package main

	import (
		"context"
		"fmt"
		"time"

		"codeberg.org/emojife/emojife/core"
		"codeberg.org/emojife/emojife/core/requests"
	)

	func main() {
		client := requests.NewClient(requests.Options{
			BaseURL: "https://api.github.com",
			Timeout: 15 * time.Second,
		})
		catalog := core.NewCatalog(client, "insertfahim", "Telegram-Animated-Emojis", ".webp")

		listing, err := catalog.List(context.Background(), "food-and-drink")
		if err != nil {
			panic(err)
		}
		fmt.Println(listing.Emojis)
	}
*/
package core
