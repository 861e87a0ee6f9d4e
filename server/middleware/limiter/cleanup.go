// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// lastCleanupAt holds the Unix nanoseconds of the last cleanup run.
var lastCleanupAt atomic.Int64

// DoCleanup schedules a sweep of expired limiters when CleanupInterval has
// passed since the previous one. It never blocks the caller.
func DoCleanup() {
	now := timeNow()

	last := lastCleanupAt.Load()
	if last == 0 {
		lastCleanupAt.CompareAndSwap(0, now.UnixNano())

		return
	}

	if now.Sub(time.Unix(0, last)) < CleanupInterval {
		return
	}

	// Only one caller wins the slot for this interval.
	if !lastCleanupAt.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	go func() {
		cleanupExpiredLimiters()

		log.Debug().Time("start", now).Dur("dur", time.Since(now)).Msg("limiter cleanup")
	}()
}
