// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"codeberg.org/emojife/emojife/core/category"
	"codeberg.org/emojife/emojife/i18n"
)

// AppName is shown in page titles and the header.
const AppName = "EmojiFE"

// GridID is the element id of the swappable grid container.
const GridID = "emoji-grid"

// LayoutData is shared by every full page.
type LayoutData struct {
	Title string

	// CacheID is appended to static asset URLs to bust caches on restart.
	CacheID string

	// RepoURL is the upstream repository credited in the footer.
	RepoURL string
}

// CategoryData is the data used to render the index and category pages.
type CategoryData struct {
	Layout LayoutData

	// Current is the display name of the selected category.
	Current string
}

// AboutData is the data used to render the about page.
type AboutData struct {
	Layout LayoutData

	Version      string
	Revision     string
	StartingTime string

	// Upstream is "owner/repo" of the emoji source.
	Upstream   string
	UsingToken bool
}

// ErrorData is the data used to render the error page.
type ErrorData struct {
	Layout     LayoutData
	Error      error
	StatusCode int
	RequestID  string
}

// PartialURL returns the fragment URL the browser loads for display.
func PartialURL(display string) string {
	return "/partials/emojis/" + url.PathEscape(category.FormatSlug(display))
}

func pageTitle(ctx context.Context, title string) string {
	if title == "" {
		return AppName
	}

	return i18n.Tr(ctx, title) + " | " + AppName
}

// tileTitle prefixes name with its Unicode glyph when the name is a known emoji.
func tileTitle(name string) string {
	if glyph := Glyph(name); glyph != "" {
		return glyph + " " + name
	}

	return name
}

// imageURL passes an upstream download URL through templ's URL sanitiser.
func imageURL(downloadURL string) string {
	return string(templ.URL(downloadURL))
}

type aboutRow struct {
	label string
	value string
}

func aboutRows(ctx context.Context, data AboutData) []aboutRow {
	token := i18n.Tr(ctx, "No")
	if data.UsingToken {
		token = i18n.Tr(ctx, "Yes")
	}

	return []aboutRow{
		{i18n.Tr(ctx, "Version"), data.Version},
		{i18n.Tr(ctx, "Revision"), data.Revision},
		{i18n.Tr(ctx, "Running since"), data.StartingTime},
		{i18n.Tr(ctx, "Emoji source"), data.Upstream},
		{i18n.Tr(ctx, "Authenticated upstream requests"), token},
	}
}
