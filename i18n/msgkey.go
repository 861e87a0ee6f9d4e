// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MsgKey is a msgid that renders as its translation, for use as a templ
// component: @i18n.MsgKey("About").
//
// Like every msgid it is the original English UI text.
type MsgKey string

// Tr translates the msgid for the locale carried by ctx.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// Render implements templ.Component. The translation is HTML-escaped.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(s.Tr(ctx)))

	return err
}
