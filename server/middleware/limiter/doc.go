// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits HTTP requests per client network.

Clients are grouped by IP network (a /24 for IPv4 and a /48 for IPv6 by
default) and each network shares one token bucket. Every response carries
RateLimit-* headers; exhausted networks get 429 Too Many Requests.
*/
package limiter
