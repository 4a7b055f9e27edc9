// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"verse-notes/internal/reference"
)

// --- View Helpers ---
// These functions generate the body and footer content for each UI state.
// View() combines them with the header and sizes the viewport.

func (m *model) renderNoteListView() (string, string) {
	body := strings.Builder{}
	cursorLine := 0
	line := 0

	if len(m.rows) == 0 {
		body.WriteString(emptyStyle.Render("No notes found. Add one with /addnote or `verse-notes notes add`."))
	}

	var current string
	for i, row := range m.rows {
		if name := row.ref.String(); name != current {
			current = name
			if i > 0 {
				body.WriteString("\n")
				line++
			}
			body.WriteString(renderSectionHeader(row.ref) + "\n")
			line++
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			cursorLine = line
		}
		fmt.Fprintf(&body, "%s%d. %s\n", cursor, row.position, row.text)
		line++
	}

	m.scrollTo(cursorLine)

	help := m.helpLine([]key.Binding{m.keymap.Up, m.keymap.Down, m.keymap.Delete, m.keymap.Copy, m.keymap.Quit})
	return body.String(), m.renderFooter(help)
}

func (m *model) renderDeleteConfirmView() (string, string) {
	body := strings.Builder{}
	if m.pending != nil {
		fmt.Fprintf(&body, "Delete note %s?\n\n", identifierColor.Render(m.pending.label()))
		fmt.Fprintf(&body, "  %s\n", m.pending.text)
	}
	m.scrollTo(0)

	help := m.helpLine([]key.Binding{m.keymap.Yes, m.keymap.No, m.keymap.Back})
	return body.String(), m.renderFooter(help)
}

func renderSectionHeader(ref reference.Reference) string {
	label := "[" + ref.String() + "]"
	if ref.Scope() == reference.ScopeBook {
		return sectionBookStyle.Render(label)
	}
	return identifierColor.Render(label)
}

// scrollTo keeps the given content line inside the viewport.
func (m *model) scrollTo(line int) {
	height := max(1, m.height-headerHeight-footerHeight)
	switch {
	case line < m.viewport.YOffset:
		m.viewport.YOffset = line
	case line >= m.viewport.YOffset+height:
		m.viewport.YOffset = line - height + 1
	}
}

func (m *model) helpLine(bindings []key.Binding) string {
	sep := footerSeparatorStyle.Render(" | ")
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, footerKeyStyle.Render(b.Help().Key)+": "+footerDescStyle.Render(b.Help().Desc))
	}
	return strings.Join(parts, sep)
}

func (m *model) renderFooter(help string) string {
	status := ""
	if m.status != nil {
		status = m.status.style.Render(m.status.text)
	}
	return status + "\n\n" + lipgloss.NewStyle().Width(m.width).Render(help)
}
