// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// NewRequestID makes a short, roughly sortable ID: the wall clock time of day
// followed by 3 bytes of entropy.
func NewRequestID() string {
	var entropy [3]byte

	_, _ = rand.Read(entropy[:])

	return clockPrefix(time.Now()) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func clockPrefix(t time.Time) string {
	return t.Format("150405")
}
