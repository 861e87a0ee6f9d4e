// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package category maps user-facing category names and URL slugs to the folder
names used by the upstream emoji repository.

The table is fixed at build time and never mutated, so it is safe for
concurrent use without locking.
*/
package category

import (
	"fmt"
	"net/url"
	"strings"
)

// Category is one browsable group of emoji.
type Category struct {
	// Folder is the display-cased directory name in the upstream repository.
	Folder string

	// Slug is the canonical URL form of the category.
	Slug string
}

// all lists categories in navigation order.
var all = []Category{
	{Folder: "Smileys", Slug: "smileys"},
	{Folder: "People", Slug: "people"},
	{Folder: "Animals and Nature", Slug: "animals-and-nature"},
	{Folder: "Food and Drink", Slug: "food-and-drink"},
	{Folder: "Activity", Slug: "activity"},
	{Folder: "Travel and Places", Slug: "travel-and-places"},
	{Folder: "Objects", Slug: "objects"},
	{Folder: "Symbols", Slug: "symbols"},
	{Folder: "Flags", Slug: "flags"},
}

// folders maps every accepted spelling to its folder.
var folders = map[string]string{
	"smileys":            "Smileys",
	"people":             "People",
	"animals-and-nature": "Animals and Nature",
	"animals and nature": "Animals and Nature",
	"food-and-drink":     "Food and Drink",
	"food and drink":     "Food and Drink",
	"activity":           "Activity",
	"travel-and-places":  "Travel and Places",
	"travel and places":  "Travel and Places",
	"objects":            "Objects",
	"symbols":            "Symbols",
	"flags":              "Flags",
}

// InvalidCategoryError is returned when a normalized slug has no folder.
type InvalidCategoryError struct {
	// Received is the normalized input, echoed back for diagnostics.
	Received string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category %q", e.Received)
}

// All returns the categories in navigation order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)

	return out
}

// Normalize prepares a raw path segment for lookup: it is URL-decoded (when
// decoding succeeds), lowercased and trimmed.
func Normalize(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}

	return strings.TrimSpace(strings.ToLower(raw))
}

// Resolve returns the folder for an already normalized slug.
func Resolve(normalized string) (string, error) {
	folder, ok := folders[normalized]
	if !ok {
		return "", &InvalidCategoryError{Received: normalized}
	}

	return folder, nil
}

// Lookup returns the Category for an already normalized slug.
func Lookup(normalized string) (Category, error) {
	folder, err := Resolve(normalized)
	if err != nil {
		return Category{}, err
	}

	for _, c := range all {
		if c.Folder == folder {
			return c, nil
		}
	}

	return Category{}, &InvalidCategoryError{Received: normalized}
}

// FormatSlug turns a display name such as "Food & Drink" into the slug a
// client requests: lowercased, the first "&" spelled out as "and", trimmed.
func FormatSlug(display string) string {
	return strings.TrimSpace(strings.Replace(strings.ToLower(display), "&", "and", 1))
}
