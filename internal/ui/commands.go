// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"verse-notes/internal/logger"
	"verse-notes/internal/notes"
)

// --- Commands ---
// Clipboard work runs as a tea.Cmd. Store mutations stay on the Update
// goroutine so the row listing never lags behind the store.

func deleteNote(store *notes.Store, row noteRow) noteDeletedMsg {
	removed, err := store.Delete(row.ref, row.position)
	if err != nil {
		logger.Warn("TUI delete failed", "reference", row.ref.String(), "position", row.position, "error", err)
	}
	return noteDeletedMsg{label: row.label(), removed: removed, err: err}
}

func copyNoteCmd(copyFn func(string) error, row noteRow) tea.Cmd {
	return func() tea.Msg {
		if copyFn == nil {
			return noteCopiedMsg{label: row.label(), err: fmt.Errorf("clipboard is not available")}
		}
		return noteCopiedMsg{label: row.label(), err: copyFn(row.text)}
	}
}
