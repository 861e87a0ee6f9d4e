// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package client fetches emoji listings from an EmojiFE instance and tracks the
result as a small state machine: every load starts in StatusLoading and
settles in StatusSuccess, StatusEmpty or StatusError.

A Loader applies only the most recent load, so a slow response for a category
the user has already navigated away from never overwrites a newer one.
*/
package client
