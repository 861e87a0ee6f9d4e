// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/emojife/emojife/config"
	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/server/utils"
	"codeberg.org/emojife/emojife/views"
)

func layoutData(title string) views.LayoutData {
	return views.LayoutData{
		Title:   title,
		CacheID: config.Global.Instance.FileServerCacheID,
		RepoURL: config.Global.Instance.RepoURL,
	}
}

// IndexPage is the handler for /. It shows the configured default category.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	c, err := category.Lookup(category.FormatSlug(config.Global.Instance.DefaultCategory))
	if err != nil {
		return err
	}

	return renderCategory(w, r, c)
}

// CategoryPage is the handler for /category/{category}.
func CategoryPage(w http.ResponseWriter, r *http.Request) error {
	c, err := category.Lookup(category.Normalize(utils.GetPathVar(r, "category")))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)

		return err
	}

	return renderCategory(w, r, c)
}

func renderCategory(w http.ResponseWriter, r *http.Request, c category.Category) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.CategoryPage(views.CategoryData{
		Layout:  layoutData(c.Folder),
		Current: c.Folder,
	}).Render(r.Context(), w)
}
