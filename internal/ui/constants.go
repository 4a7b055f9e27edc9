// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateNoteList state = iota
	stateDeleteConfirm
)

const (
	headerHeight = 1 // Height reserved for the main title header.
	footerHeight = 3 // Status line, blank line and key help.
)
