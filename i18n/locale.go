// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// BaseLocale is the default locale used when no specific locale is set.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// langCookieMaxAge keeps an explicit language choice for a year.
const langCookieMaxAge = 365 * 24 * time.Hour

// Language is a UI language a visitor can switch to.
type Language struct {
	Tag language.Tag

	// Name is the language's own name for itself, such as "日本語".
	Name string
}

// Languages lists the base locale followed by every loaded catalogue, in the
// order Setup matched them. Before Setup only the base locale is listed.
func Languages() []Language {
	tags := supportedTags
	if len(tags) == 0 {
		tags = []language.Tag{baseTag}
	}

	out := make([]Language, 0, len(tags))
	for _, tag := range tags {
		name := display.Self.Name(tag)
		if name == "" {
			name = tag.String()
		}

		out = append(out, Language{Tag: tag, Name: name})
	}

	return out
}

// RememberChoice stores an explicit ?lang= choice in [LangCookie] so that
// requests made without the parameter, such as grid fragments, follow it.
// "auto" clears the cookie. Unparsable values are ignored.
func RememberChoice(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get(LangParam))
	if q == "" {
		return
	}

	cookie := &http.Cookie{
		Name:     LangCookie,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if strings.EqualFold(q, "auto") {
		cookie.MaxAge = -1
	} else {
		tag, err := language.Parse(q)
		if err != nil {
			return
		}

		cookie.Value = tag.String()
		cookie.MaxAge = int(langCookieMaxAge.Seconds())
	}

	http.SetCookie(w, cookie)
}
