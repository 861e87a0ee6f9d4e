// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain of EmojiFE.

Route definitions are centralized in router.DefineRoutes; every fallible
handler is wrapped with CatchError there.
*/
package middleware
