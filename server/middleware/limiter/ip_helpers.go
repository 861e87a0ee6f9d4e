// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientAddr resolves the address a request is limited under.
//
// X-Real-IP and then the last X-Forwarded-For hop are honoured only when the
// peer is on a loopback or private network, which is where a reverse proxy
// in front of EmojiFE lives.
func clientAddr(r *http.Request) (netip.Addr, error) {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	if host == "" {
		return netip.Addr{}, errMissingClientIP
	}

	peer, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, errInvalidIPFormat
	}

	peer = peer.Unmap()

	if !peer.IsLoopback() && !peer.IsPrivate() {
		return peer, nil
	}

	forwarded := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if forwarded == "" {
		if hops := r.Header.Get("X-Forwarded-For"); hops != "" {
			forwarded = strings.TrimSpace(hops[strings.LastIndexByte(hops, ',')+1:])
		}
	}

	if forwarded == "" {
		return peer, nil
	}

	addr, err := netip.ParseAddr(forwarded)
	if err != nil {
		return netip.Addr{}, errInvalidIPFormat
	}

	return addr.Unmap(), nil
}

// inPassList reports whether addr equals or falls inside any entry. Entries
// are plain addresses or CIDR prefixes; unparsable entries never match.
func inPassList(addr netip.Addr, entries []string) bool {
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			if prefix.Contains(addr) {
				return true
			}

			continue
		}

		if other, err := netip.ParseAddr(entry); err == nil && other.Unmap() == addr {
			return true
		}
	}

	return false
}

// clientPrefix groups addr with its neighbours so that one bucket covers a
// whole allocation rather than a single address.
func clientPrefix(addr netip.Addr, ipv4Bits, ipv6Bits int) netip.Prefix {
	bits := ipv6Bits
	if addr.Is4() {
		bits = ipv4Bits
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return prefix
}
