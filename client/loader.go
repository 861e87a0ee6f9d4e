// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package client

import (
	"context"
	"sync"
)

// Loader runs loads against a Client and keeps the state of the latest one.
//
// Every call to Load takes a new sequence number. A load that settles after a
// newer one has started is discarded.
type Loader struct {
	client   *Client
	onChange func(State)

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewLoader returns a Loader. onChange, if not nil, is called with every
// state the Loader applies, in order, while no other state is being applied.
func NewLoader(c *Client, onChange func(State)) *Loader {
	return &Loader{client: c, onChange: onChange}
}

// Load enters StatusLoading for display, fetches it and applies the result
// if no newer load has started meanwhile.
//
// It returns the settled state of this load and whether it was applied.
func (l *Loader) Load(ctx context.Context, display string) (State, bool) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	loading := Loading(display)
	loading.Seq = seq
	l.apply(loading)
	l.mu.Unlock()

	settled := l.client.Fetch(ctx, display)
	settled.Seq = seq

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return settled, false
	}

	l.apply(settled)

	return settled, true
}

// State returns the currently applied state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// apply must be called with mu held.
func (l *Loader) apply(s State) {
	l.state = s

	if l.onChange != nil {
		l.onChange(s)
	}
}
