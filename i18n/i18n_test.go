// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/emojife/emojife/server/assets"
)

const jaPO = `msgid ""
msgstr ""
"Language: ja\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=1; plural=0;\n"

msgid "Smileys"
msgstr "スマイリー"

msgid "Request ID: {{.ID}}"
msgstr "リクエスト ID: {{.ID}}"
`

func TestMain(m *testing.M) {
	assets.FS = fstest.MapFS{
		"po/ja.po":       {Data: []byte(jaPO)},
		"po/emojife.pot": {Data: []byte(`msgid ""` + "\n" + `msgstr ""` + "\n")},
	}

	if err := Setup(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestTr(t *testing.T) {
	t.Parallel()

	ja := WithTag(context.Background(), language.Japanese)
	en := WithTag(context.Background(), language.English)

	assert.Equal(t, "スマイリー", Tr(ja, "Smileys"))
	assert.Equal(t, "リクエスト ID: abc", Tr(ja, "Request ID: {{.ID}}", "ID", "abc"))
	assert.Equal(t, "Flags", Tr(ja, "Flags"), "missing keys fall back to the msgid")
	assert.Equal(t, "Smileys", Tr(en, "Smileys"))
	assert.Equal(t, "Request ID: abc", Tr(context.Background(), "Request ID: {{.ID}}", "ID", "abc"))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		target         string
		cookie         string
		acceptLanguage string
		want           language.Tag
	}{
		{"default", "/", "", "", language.English},
		{"accept language", "/", "", "ja-JP,ja;q=0.9", language.Japanese},
		{"cookie beats header", "/", "en", "ja", language.English},
		{"query beats cookie", "/?lang=ja", "en", "", language.Japanese},
		{"auto ignores cookie", "/?lang=auto", "ja", "en", language.English},
		{"unsupported", "/", "", "fr", language.English},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookie, Value: tc.cookie})
			}

			if tc.acceptLanguage != "" {
				r.Header.Set("Accept-Language", tc.acceptLanguage)
			}

			assert.Equal(t, tc.want, FromRequest(r))
		})
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	langs := Languages()
	require.Len(t, langs, 2)

	assert.Equal(t, language.English, langs[0].Tag, "base locale comes first")
	assert.Equal(t, "English", langs[0].Name)
	assert.Equal(t, language.Japanese, langs[1].Tag)
	assert.Equal(t, "日本語", langs[1].Name)
}

func TestRememberChoice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		target     string
		wantCookie bool
		wantValue  string
		wantMaxAge int
	}{
		{"no parameter", "/", false, "", 0},
		{"explicit language", "/?lang=ja-jp", true, "ja-JP", int(langCookieMaxAge.Seconds())},
		{"auto clears", "/?lang=AUTO", true, "", -1},
		{"garbage is ignored", "/?lang=%21%21", false, "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			RememberChoice(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))

			cookies := rr.Result().Cookies()
			if !tc.wantCookie {
				assert.Empty(t, cookies)

				return
			}

			require.Len(t, cookies, 1)
			assert.Equal(t, LangCookie, cookies[0].Name)
			assert.Equal(t, tc.wantValue, cookies[0].Value)
			assert.Equal(t, tc.wantMaxAge, cookies[0].MaxAge)
		})
	}
}

func TestLocaleKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "de-DE", localeKey(language.MustParse("de-DE-1996")))
	assert.Equal(t, "ja", localeKey(language.Japanese))
}
