// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"verse-notes/cmd/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse, copy and delete notes in a full-screen view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var copyFn func(string) error
		if !clipboard.Unsupported {
			copyFn = clipboardWrite
		}
		return tui.RunTUI(noteStore, copyFn)
	},
}
