// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"codeberg.org/emojife/emojife/config"
)

var (
	// Logger is the logger used by package i18n.
	Logger zerolog.Logger

	// reported holds the missingKey values already warned about.
	reported sync.Map
)

type missingKey struct {
	locale string
	msgid  string
}

func strictMissingKeys() bool {
	return config.Global.Internationalization.StrictMissingKeys
}

// reportMissing warns that msgid has no translation for tag. Each locale and
// msgid pair is reported once per Setup.
func reportMissing(tag language.Tag, msgid string) {
	key := missingKey{locale: localeKey(tag), msgid: msgid}

	if _, seen := reported.LoadOrStore(key, struct{}{}); seen {
		return
	}

	Logger.Warn().
		Str("locale", key.locale).
		Str("key", msgid).
		Msg("Missing i18n translation")
}

// localeKey drops variants and extensions so that "de-DE-1996" and "de-DE"
// share one entry.
func localeKey(tag language.Tag) string {
	base, script, region := tag.Raw()
	stripped, _ := language.Compose(base, script, region)

	return stripped.String()
}
