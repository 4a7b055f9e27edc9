// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// notesCmd is the parent command for note management subcommands
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Add, delete and list notes",
	Long: `Manage notes without starting the interactive prompt. References may name a
book ("John"), a chapter ("John 3"), a verse ("John 3:16") or a verse range
("John 3:16-18"). These commands do not need the verse API to be configured.`,
}

var notesAddCmd = &cobra.Command{
	Use:               "add <reference> <note text...>",
	Short:             "Add a note to a book, chapter, verse or verse range",
	Example:           "  verse-notes notes add 'John 3:16' God so loved the world\n  verse-notes notes add Romans 'Paul to the church in Rome'",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: bookCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := newSession(cmd.OutOrStdout())
		if err := session.AddNote(args[0], strings.Join(args[1:], " ")); err != nil {
			return reportedError{err}
		}
		return nil
	},
}

var notesDelCmd = &cobra.Command{
	Use:               "del <reference> <note number>",
	Aliases:           []string{"delete", "rm"},
	Short:             "Delete a note by its number in the list for a reference",
	Example:           "  verse-notes notes del 'John 3:16' 2",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: noteReferenceCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := newSession(cmd.OutOrStdout())
		if err := session.DeleteNote(args[0], args[1]); err != nil {
			return reportedError{err}
		}
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"all", "ls"},
	Short:   "List every stored note",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		newSession(cmd.OutOrStdout()).AllNotes()
	},
}

func init() {
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesDelCmd)
	notesCmd.AddCommand(notesListCmd)
}
