// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---
// These methods handle key presses for specific UI states.

func (m *model) handleNoteListKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd
	lastIdx := len(m.rows) - 1

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < lastIdx {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(0, lastIdx)
	case key.Matches(msg, m.keymap.PgUp):
		m.cursor = max(0, m.cursor-m.viewport.Height)
	case key.Matches(msg, m.keymap.PgDown):
		m.cursor = max(0, min(lastIdx, m.cursor+m.viewport.Height))
	case key.Matches(msg, m.keymap.Delete):
		if row, ok := m.selected(); ok {
			m.pending = &row
			m.currentState = stateDeleteConfirm
		}
	case key.Matches(msg, m.keymap.Copy):
		if row, ok := m.selected(); ok {
			cmds = append(cmds, copyNoteCmd(m.copyFn, row))
		}
	}
	return cmds
}

func (m *model) handleDeleteConfirmKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keymap.Yes):
		if m.pending != nil {
			cmds = append(cmds, handleNoteDeletedMsg(m, deleteNote(m.store, *m.pending)))
		}
		m.pending = nil
		m.currentState = stateNoteList
	case key.Matches(msg, m.keymap.No), key.Matches(msg, m.keymap.Back):
		m.pending = nil
		m.currentState = stateNoteList
		m.setStatus(statusStyle, "Deletion cancelled.")
	}
	return cmds
}
