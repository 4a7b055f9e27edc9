// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	emptyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	identifierColor  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	sectionBookStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	// Footer / Status Bar Styles
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Default light grey text

	footerKeyStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("39")) // Bright blue for key

	footerDescStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("250")) // Light grey for description

	footerSeparatorStyle = lipgloss.NewStyle().
				Inherit(footerStyle).
				Foreground(lipgloss.Color("240")) // Dim grey for separator "|"
)
