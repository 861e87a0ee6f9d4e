// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/emojife/emojife/config"
	"codeberg.org/emojife/emojife/views"
)

// AboutPage is the handler for the /about page.
func AboutPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	pageData := views.AboutData{
		Layout:       layoutData("About"),
		Version:      config.BuildVersion,
		Revision:     config.Global.Build.Revision(),
		StartingTime: config.Global.Instance.StartingTime,
		Upstream:     config.Global.Upstream.Owner + "/" + config.Global.Upstream.Repo,
		UsingToken:   config.Global.UsingToken(),
	}

	return views.About(pageData).Render(r.Context(), w)
}
