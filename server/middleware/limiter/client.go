// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"errors"
	"net/http"
	"net/netip"
	"strings"

	"codeberg.org/emojife/emojife/config"
)

var (
	errMissingClientIP = errors.New("missing client IP")
	errInvalidIPFormat = errors.New("invalid IP format")
)

// ClientInfo is the limiter's view of a single request: who sent it and
// which bucket it draws from.
type ClientInfo struct {
	ip      netip.Addr
	network netip.Prefix
	limiter *limiterWrapper
}

// newClientInfo resolves the client address and bucket prefix of r.
func newClientInfo(r *http.Request) (*ClientInfo, error) {
	addr, err := clientAddr(r)
	if err != nil {
		return nil, err
	}

	return &ClientInfo{
		ip:      addr,
		network: clientPrefix(addr, config.Global.Limiter.IPv4Prefix, config.Global.Limiter.IPv6Prefix),
	}, nil
}

// isPassListed returns true if c.ip is in the configured pass list.
func (c *ClientInfo) isPassListed() bool {
	return inPassList(c.ip, config.Global.Limiter.PassIPs)
}

// isExcludedPath returns true if the request path is never limited.
func isExcludedPath(path string) bool {
	for _, p := range excludedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
