// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package client_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/emojife/emojife/client"
)

func TestLoaderTransitions(t *testing.T) {
	t.Parallel()

	handler := serve(http.StatusOK, `{"emojis":[{"name":"a","download_url":"u"}]}`)
	c := client.New("http://emojife.test", &http.Client{Transport: client.HandlerTransport{Handler: handler}})

	var seen []client.State

	loader := client.NewLoader(c, func(s client.State) { seen = append(seen, s) })

	state, applied := loader.Load(t.Context(), "Smileys")
	require.True(t, applied)
	assert.Equal(t, client.StatusSuccess, state.Status)

	require.Len(t, seen, 2)
	assert.Equal(t, client.StatusLoading, seen[0].Status)
	assert.Equal(t, client.MessageLoading, seen[0].Message)
	assert.Equal(t, client.StatusSuccess, seen[1].Status)
	assert.Equal(t, seen[0].Seq, seen[1].Seq)

	// Changing category re-enters Loading.
	loader.Load(t.Context(), "People")
	require.Len(t, seen, 4)
	assert.Equal(t, client.StatusLoading, seen[2].Status)
	assert.Equal(t, "People", seen[2].Category)
	assert.Greater(t, seen[2].Seq, seen[1].Seq)
	assert.Equal(t, loader.State(), seen[3])
}

func TestLoaderLatestRequestWins(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slowStarted := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/smileys") {
			close(slowStarted)
			<-release
			_, _ = w.Write([]byte(`{"emojis":[{"name":"slow","download_url":"u"}]}`))

			return
		}

		_, _ = w.Write([]byte(`{"emojis":[{"name":"fast","download_url":"u"}]}`))
	})

	c := client.New("http://emojife.test", &http.Client{Transport: client.HandlerTransport{Handler: handler}})
	loader := client.NewLoader(c, nil)

	var (
		wg          sync.WaitGroup
		slowState   client.State
		slowApplied bool
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		slowState, slowApplied = loader.Load(t.Context(), "Smileys")
	}()

	<-slowStarted

	fastState, fastApplied := loader.Load(t.Context(), "People")
	require.True(t, fastApplied)
	assert.Equal(t, "fast", fastState.Emojis[0].Name)

	close(release)
	wg.Wait()

	assert.False(t, slowApplied, "stale load must be discarded")
	assert.Equal(t, "slow", slowState.Emojis[0].Name)

	current := loader.State()
	assert.Equal(t, "People", current.Category)
	assert.Equal(t, "fast", current.Emojis[0].Name)
}
