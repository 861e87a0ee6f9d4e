// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"strings"
	"sync"
	"unicode"

	"github.com/forPelevin/gomoji"
)

// glyphsBySlug indexes every known emoji character by its CLDR slug, such as "grinning-face".
var glyphsBySlug = sync.OnceValue(func() map[string]string {
	all := gomoji.AllEmojis()

	index := make(map[string]string, len(all))
	for _, e := range all {
		if _, ok := index[e.Slug]; !ok {
			index[e.Slug] = e.Character
		}
	}

	return index
})

// Glyph returns the Unicode character matching an asset name such as
// "Grinning Face", or "" when the name is not a known emoji.
func Glyph(name string) string {
	return glyphsBySlug()[slugify(name)]
}

func slugify(name string) string {
	var b strings.Builder

	pendingDash := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingDash = false

			b.WriteRune(r)

			continue
		}

		pendingDash = true
	}

	return b.String()
}
