// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the Bubble Tea note browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"verse-notes/internal/notes"
	"verse-notes/internal/reference"
)

// noteRow is one note in the flattened listing.
type noteRow struct {
	ref      reference.Reference
	position int // 1-based within its list
	text     string
}

func (r noteRow) label() string {
	return fmt.Sprintf("%s #%d", r.ref, r.position)
}

// statusLine is the outcome message shown above the footer.
type statusLine struct {
	text  string
	style lipgloss.Style
}

type model struct {
	store  *notes.Store
	copyFn func(string) error
	keymap KeyMap

	rows         []noteRow
	cursor       int
	currentState state
	pending      *noteRow // Row awaiting delete confirmation
	status       *statusLine

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// InitialModel creates the browser over store. copyFn writes to the clipboard.
func InitialModel(store *notes.Store, copyFn func(string) error) model {
	m := model{
		store:        store,
		copyFn:       copyFn,
		keymap:       DefaultKeyMap,
		currentState: stateNoteList,
	}
	m.reloadRows()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, handleWindowSizeMsg(m, msg))

	case tea.KeyMsg:
		// Global quit, except while a confirmation prompt is up where q means nothing.
		if key.Matches(msg, m.keymap.Quit) && (m.currentState != stateDeleteConfirm || msg.Type == tea.KeyCtrlC) {
			return m, tea.Quit
		}
		switch m.currentState {
		case stateNoteList:
			cmds = append(cmds, m.handleNoteListKeys(msg)...)
		case stateDeleteConfirm:
			cmds = append(cmds, m.handleDeleteConfirmKeys(msg)...)
		}

	case noteCopiedMsg:
		cmds = append(cmds, handleNoteCopiedMsg(m, msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render(fmt.Sprintf("Verse Notes (%d)", len(m.rows)))

	var body, footer string
	switch m.currentState {
	case stateDeleteConfirm:
		body, footer = m.renderDeleteConfirmView()
	default:
		body, footer = m.renderNoteListView()
	}

	m.viewport.Height = max(1, m.height-headerHeight-footerHeight)
	m.viewport.SetContent(body)

	return strings.Join([]string{header, m.viewport.View(), footer}, "\n")
}

// reloadRows rebuilds the listing from the store and keeps the cursor in bounds.
func (m *model) reloadRows() {
	m.rows = m.rows[:0]
	for _, sec := range m.store.All() {
		for i, text := range sec.Notes {
			m.rows = append(m.rows, noteRow{ref: sec.Ref, position: i + 1, text: text})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) selected() (noteRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return noteRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *model) setStatus(style lipgloss.Style, format string, args ...any) {
	m.status = &statusLine{text: fmt.Sprintf(format, args...), style: style}
}
