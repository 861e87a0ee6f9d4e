// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// The code in this file redirects query-style category links, such as those
// produced by a plain HTML form, to canonical category pages.
//
// Add more redirects in (*Router).DefineRoutes

package router

import (
	"net/http"
	"net/url"

	"codeberg.org/emojife/emojife/core/category"
)

// redirectToCategory is a helper function to redirect requests to the
// category page named by the specified query parameter.
//
// Both display names and slugs are accepted. Unknown categories redirect to
// the index page.
//
// Example:   /category?name=Food%20%26%20Drink   ->   /category/food-and-drink
func redirectToCategory(param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := "/"

		value := category.FormatSlug(r.URL.Query().Get(param))
		if c, err := category.Lookup(category.Normalize(value)); err == nil {
			target = "/category/" + url.PathEscape(c.Slug)
		}

		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	}
}
