// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update architecture.

package ui

// noteDeletedMsg carries the outcome of deleting a note. It is applied
// directly by the confirm handler rather than sent through the program. removed is set
// whenever the note left the store, even if saving failed.
type noteDeletedMsg struct {
	label   string
	removed string
	err     error
}

// noteCopiedMsg carries the outcome of a clipboard write.
type noteCopiedMsg struct {
	label string
	err   error
}
