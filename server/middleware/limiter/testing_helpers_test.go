// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"testing"
	"time"

	"codeberg.org/emojife/emojife/config"
)

// testConfigMutex serializes tests that mutate global package state.
var testConfigMutex sync.Mutex

// mockTimeProvider maintains a controllable current time for testing.
type mockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
}

// Now returns the current mock time.
func (m *mockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.currentTime
}

// Sleep advances the mock current time by the specified duration.
func (m *mockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentTime = m.currentTime.Add(d)
}

// setupLimiterTest enables the limiter with a small bucket, hooks a mock
// clock and clears all limiters. Everything is restored when the test completes.
//
// NOTE: call it once per test; it holds a global mutex until cleanup.
func setupLimiterTest(t *testing.T) *mockTimeProvider {
	t.Helper()

	testConfigMutex.Lock()

	origConfig := config.Global
	origTimeNow := timeNow

	config.Global.Limiter.Enabled = true
	config.Global.Limiter.Rate = 1
	config.Global.Limiter.Burst = 3
	config.Global.Limiter.IPv4Prefix = 24
	config.Global.Limiter.IPv6Prefix = 48
	config.Global.Limiter.PassIPs = []string{"127.0.0.1"}

	mockTime := &mockTimeProvider{currentTime: time.Unix(1_700_000_000, 0)}
	timeNow = mockTime.Now

	limiters = sync.Map{}
	lastCleanupAt.Store(0)

	t.Cleanup(func() {
		timeNow = origTimeNow
		limiters = sync.Map{}
		config.Global = origConfig

		testConfigMutex.Unlock()
	})

	return mockTime
}
