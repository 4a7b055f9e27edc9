// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"verse-notes/internal/notes"
	"verse-notes/internal/reference"
)

// storeForCompletion opens the note store for completion, where cobra skips
// the pre-run hooks. Errors just mean no suggestions.
func storeForCompletion() *notes.Store {
	if err := setup(); err != nil || noteStore == nil {
		return nil
	}
	return noteStore
}

// bookCompletionFunc suggests book names that already have notes.
func bookCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store := storeForCompletion()
	if store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return matchPrefix(store.Books(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// noteReferenceCompletionFunc suggests stored references for the first
// argument and note numbers for that reference for the second.
func noteReferenceCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	store := storeForCompletion()
	if store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	switch len(args) {
	case 0:
		var refs []string
		for _, sec := range store.All() {
			refs = append(refs, sec.Ref.String())
		}
		return matchPrefix(refs, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		ref, err := reference.Parse(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var positions []string
		for _, sec := range store.All() {
			if sec.Ref != ref {
				continue
			}
			for i, note := range sec.Notes {
				positions = append(positions, strconv.Itoa(i+1)+"\t"+note)
			}
		}
		return matchPrefix(positions, toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// matchPrefix keeps candidates starting with prefix, ignoring case.
func matchPrefix(candidates []string, prefix string) []string {
	lower := strings.ToLower(prefix)
	return slices.DeleteFunc(slices.Clone(candidates), func(c string) bool {
		return !strings.HasPrefix(strings.ToLower(c), lower)
	})
}
