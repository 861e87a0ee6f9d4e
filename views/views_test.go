// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/emojife/emojife/client"
	"codeberg.org/emojife/emojife/core"
	"codeberg.org/emojife/emojife/views"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var b strings.Builder

	require.NoError(t, c.Render(t.Context(), &b))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	return doc
}

func TestEmojiGridSuccess(t *testing.T) {
	t.Parallel()

	doc := render(t, views.EmojiGrid(client.State{
		Status:   client.StatusSuccess,
		Category: "Smileys",
		Emojis: []core.EmojiAsset{
			{Name: "Grinning Face", DownloadURL: "https://raw.example/Grinning%20Face.webp"},
			{Name: "custom-thing", DownloadURL: "https://raw.example/custom-thing.webp"},
		},
	}))

	grid := doc.Find("#" + views.GridID)
	assert.Equal(t, "success", grid.AttrOr("data-status", ""))
	assert.Zero(t, grid.Find("p.status").Length(), "no status paragraph next to tiles")

	imgs := grid.Find("img")
	require.Equal(t, 2, imgs.Length())
	assert.Equal(t, "Grinning Face", imgs.Eq(0).AttrOr("alt", ""))
	assert.Equal(t, "https://raw.example/Grinning%20Face.webp", imgs.Eq(0).AttrOr("src", ""))
	assert.Equal(t, "😀 Grinning Face", imgs.Eq(0).AttrOr("title", ""))
	assert.Equal(t, "custom-thing", imgs.Eq(1).AttrOr("title", ""))
}

func TestEmojiGridStatusMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		state      client.State
		wantText   string
		wantError  bool
		wantSource string
	}{
		{"loading", client.Loading("Food and Drink"), client.MessageLoading, false, "/partials/emojis/food%20and%20drink"},
		{"empty", client.State{Status: client.StatusEmpty, Category: "Flags", Message: client.MessageEmpty}, client.MessageEmpty, false, ""},
		{"failed", client.Failed("Flags", client.MessageFailed), client.MessageFailed, true, ""},
		{"server error", client.Failed("Flags", "Invalid category"), "Invalid category", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := render(t, views.EmojiGrid(tc.state))
			grid := doc.Find("#" + views.GridID)

			assert.Zero(t, grid.Find("img").Length(), "no tiles next to a status")
			assert.Equal(t, tc.wantText, grid.Find("p.status").Text())
			assert.Equal(t, tc.wantError, grid.Find("p.status-error").Length() == 1)
			assert.Equal(t, tc.wantSource, grid.AttrOr("data-src", ""))
		})
	}
}

func TestTileSanitisesURL(t *testing.T) {
	t.Parallel()

	doc := render(t, views.Tile("x", "javascript:alert(1)"))
	assert.NotContains(t, doc.Find("img").AttrOr("src", ""), "javascript")
}

func TestCategoryPage(t *testing.T) {
	t.Parallel()

	doc := render(t, views.CategoryPage(views.CategoryData{
		Layout:  views.LayoutData{Title: "Travel and Places", CacheID: "abc", RepoURL: "https://github.com/insertfahim/Telegram-Animated-Emojis"},
		Current: "Travel and Places",
	}))

	assert.Equal(t, "Travel and Places | EmojiFE", doc.Find("title").Text())
	assert.Equal(t, 9, doc.Find("nav.categories a").Length())

	active := doc.Find(`nav.categories a[aria-current="page"]`)
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "/category/travel-and-places", active.AttrOr("href", ""))

	assert.Equal(t, "loading", doc.Find("#"+views.GridID).AttrOr("data-status", ""))
	assert.Equal(t, "/js/emojis.js?v=abc", doc.Find("script").AttrOr("src", ""))
	assert.Equal(t,
		"https://github.com/insertfahim/Telegram-Animated-Emojis",
		doc.Find("footer a").AttrOr("href", ""))
}

func TestLayoutLanguageLinks(t *testing.T) {
	t.Parallel()

	doc := render(t, views.Layout(views.LayoutData{CacheID: "abc"}, templ.NopComponent))

	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "/css/style.css?v=abc", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))

	link := doc.Find("footer nav.languages a")
	require.Equal(t, 1, link.Length(), "only the base locale before catalogues load")
	assert.Equal(t, "?lang=en", link.AttrOr("href", ""))
	assert.Equal(t, "true", link.AttrOr("aria-current", ""))
	assert.Equal(t, "English", link.Text())
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	doc := render(t, views.Error(views.ErrorData{
		Error:      errors.New("boom <b>"),
		StatusCode: http.StatusInternalServerError,
		RequestID:  "120000abcd",
	}))

	assert.Equal(t, "Internal Server Error", doc.Find(".error-page h1").Text())
	assert.Equal(t, "boom <b>", doc.Find(".error-detail").Text())
	assert.Contains(t, doc.Find(".request-id").Text(), "120000abcd")

	notFound := render(t, views.Error(views.ErrorData{StatusCode: http.StatusNotFound}))
	assert.Zero(t, notFound.Find(".error-detail").Length())
}

func TestAboutPage(t *testing.T) {
	t.Parallel()

	doc := render(t, views.About(views.AboutData{
		Version:    "v1.0.0",
		Upstream:   "insertfahim/Telegram-Animated-Emojis",
		UsingToken: true,
	}))

	text := doc.Find("dl.about").Text()
	assert.Contains(t, text, "v1.0.0")
	assert.Contains(t, text, "insertfahim/Telegram-Animated-Emojis")
	assert.Contains(t, text, "Yes")
}

func TestGlyph(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "😀", views.Glyph("Grinning Face"))
	assert.Equal(t, "😀", views.Glyph("grinning_face"))
	assert.Empty(t, views.Glyph("definitely not an emoji"))
}
