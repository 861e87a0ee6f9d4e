// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{bytesInMB, "1.00M"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, humanizeSize(tc.in), "humanizeSize(%d)", tc.in)
	}
}

func TestSpanServerTimingName(t *testing.T) {
	t.Parallel()

	span := Span{Destination: ToGitHub, Method: "GET", URL: "https://api.github.com/x"}

	parts := strings.Split(span.ServerTimingName(), "$")
	require.Len(t, parts, 3)
	assert.Equal(t, "github", parts[0])
	assert.Equal(t, "GET", parts[1])

	decoded, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Equal(t, span.URL, string(decoded))
}

func TestSpanEndIsIdempotent(t *testing.T) {
	t.Parallel()

	var span Span

	span.Begin(context.Background())
	span.End()

	first := span.Duration()
	assert.Greater(t, int64(first), int64(0))

	span.End()
	assert.Equal(t, first, span.Duration())
}

//nolint:paralleltest // mutates package-level response saving settings
func TestSpanLogSavesUpstreamBody(t *testing.T) {
	dir := t.TempDir()

	SaveResponses = true
	ResponseDirectory = dir

	t.Cleanup(func() {
		SaveResponses = false
		ResponseDirectory = ""
	})

	span := Span{Destination: ToGitHub, RequestID: "abc", Body: []byte(`[]`)}
	span.Log()

	saved, err := os.ReadFile(filepath.Join(dir, "abc.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(saved))
}
