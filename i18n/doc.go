// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n provides internationalisation utilities backed by GNU gettext
.po catalogues.

Use the original English UI text as the msgid; do not invent keys.

	i18n.Tr(ctx, "No emojis found.")
	i18n.TrN(ctx, "{{.Count}} emoji", "{{.Count}} emojis", n, "Count", n)

Translations can be used directly as templ components:

	@i18n.MsgKey("About")

# Missing translations

By default, missing translations return the msgid unchanged. When
StrictMissingKeys is enabled, missing lookups are logged once
per locale+key and the returned text is visibly wrapped as "⟦...⟧".
*/
package i18n
