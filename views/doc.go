// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the HTML pages and fragments of EmojiFE as templ components.
*/
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate
