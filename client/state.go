// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package client

import (
	"codeberg.org/emojife/emojife/core"
)

// User-facing status messages. They double as i18n msgids.
const (
	MessageLoading = "Loading emojis..."
	MessageEmpty   = "No emojis found."
	MessageFailed  = "Failed to load emojis."
)

// Status is the phase of a load.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// State is a snapshot of one load.
//
// Emojis is non-empty only in StatusSuccess; Message is set in every other status.
type State struct {
	Status Status

	// Category is the display name the load was started for.
	Category string

	Emojis  []core.EmojiAsset
	Message string

	// Seq is the sequence number of the load that produced this state.
	Seq uint64
}

// Loading returns the initial state of a load for category.
func Loading(category string) State {
	return State{Status: StatusLoading, Category: category, Message: MessageLoading}
}

// Failed returns an error state carrying message.
func Failed(category, message string) State {
	return State{Status: StatusError, Category: category, Message: message}
}

// Settled reports whether the load has finished.
func (s State) Settled() bool {
	return s.Status != StatusLoading
}
