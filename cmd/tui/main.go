// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"verse-notes/internal/notes"
	"verse-notes/internal/ui"
)

// RunTUI initializes and runs the Bubble Tea note browser over store.
func RunTUI(store *notes.Store, copyFn func(string) error) error {
	m := ui.InitialModel(store, copyFn)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
