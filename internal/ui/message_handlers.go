// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"verse-notes/internal/notes"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		// Height is set in View() from the space left by header and footer.
		m.viewport = viewport.New(m.width, 1)
		m.ready = true
	} else {
		m.viewport.Width = m.width
	}
	return nil
}

func handleNoteDeletedMsg(m *model, msg noteDeletedMsg) tea.Cmd {
	var persistErr *notes.PersistenceError
	switch {
	case errors.As(msg.err, &persistErr):
		m.setStatus(warnStyle, "Deleted %s but could not save: %v", msg.label, msg.err)
	case msg.err != nil:
		m.setStatus(errorStyle, "Could not delete %s: %v", msg.label, msg.err)
	default:
		m.setStatus(successStyle, "Deleted %s: '%s'", msg.label, msg.removed)
	}
	m.reloadRows()
	return nil
}

func handleNoteCopiedMsg(m *model, msg noteCopiedMsg) tea.Cmd {
	if msg.err != nil {
		m.setStatus(errorStyle, "Could not copy %s: %v", msg.label, msg.err)
		return nil
	}
	m.setStatus(successStyle, "Copied %s to clipboard.", msg.label)
	return nil
}
