// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockPrefix(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.Equal(t, strings.ReplaceAll(now.Format("15:04:05"), ":", ""), clockPrefix(now))
}

func TestNewRequestID(t *testing.T) {
	t.Parallel()

	a, b := NewRequestID(), NewRequestID()

	// 6 clock digits + 4 base64 characters of entropy
	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}
