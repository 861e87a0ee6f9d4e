// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

const (
	// clientSessionCacheSize defines the size of the TLS session cache.
	clientSessionCacheSize = 20

	// maxIdleConnsPerHost defines maximum idle connections to keep per host.
	maxIdleConnsPerHost = 20

	// bufferSize defines the read and write buffer size in bytes (32KB).
	bufferSize = 32 * 1024
)

// sharedTransport is reused by every client from NewHTTPClient so connections pool.
var sharedTransport = &http.Transport{
	TLSClientConfig: &tls.Config{
		ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
		MinVersion:         tls.VersionTLS12,
	},
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConnsPerHost: maxIdleConnsPerHost,
	WriteBufferSize:     bufferSize,
	ReadBufferSize:      bufferSize,
}

// NewHTTPClient returns a client on the shared transport with the given overall timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: sharedTransport,
		Timeout:   timeout,
	}
}
