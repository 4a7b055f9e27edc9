// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"verse-notes/internal/repl"
	"verse-notes/internal/verses"
)

// spinnerLookup shows a spinner on stderr while the wrapped lookup blocks.
type spinnerLookup struct {
	next repl.Lookuper
}

func (l spinnerLookup) Lookup(ctx context.Context, query string) ([]verses.Verse, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Color("cyan")
	s.Suffix = " Looking up " + identifierColor.Sprint(query) + "..."
	s.Start()
	defer s.Stop()

	return l.next.Lookup(ctx, query)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <reference...> [-c] [-s] [-j joiner] [-v] [-n level]",
	Short: "Look up verses once and print them with their notes",
	Long: `Looks up the given reference and prints the verses, exactly like typing the
query at the interactive prompt. Flags may appear anywhere:

  -c           copy the verses to the clipboard
  -s           separate copied verses with a blank line
  -j <joiner>  custom separator for copied verses (backslash escapes allowed)
  -v           show individual and group notes (same as -n 2)
  -n <level>   show notes: 1 individual, 2 +group, 3 +chapter, 4 +book`,
	Example: "  verse-notes lookup John 3:16 -v\n  verse-notes lookup '1 John 1:1-4' -c -j '\\n--\\n'",
	// Flags are parsed by the same code the interactive prompt uses.
	DisableFlagParsing: true,
	ValidArgsFunction:  bookCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if arg == "-h" || arg == "--help" {
				return cmd.Help()
			}
		}
		args, err := extractGlobalFlags(args)
		if err != nil {
			return err
		}
		if err := setup(); err != nil {
			return err
		}
		if err := appConfig.Validate(); err != nil {
			return err
		}

		q, err := repl.ParseQuery(args)
		if err != nil {
			return err
		}
		if q.Text == "" {
			return cmd.Help()
		}

		session := newSession(cmd.OutOrStdout())
		if err := session.Query(cmd.Context(), q); err != nil {
			return reportedError{err}
		}
		return nil
	},
}

// extractGlobalFlags pulls --data-dir and --verbose out of args, since flag
// parsing is disabled for lookup.
func extractGlobalFlags(args []string) ([]string, error) {
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--verbose":
			verboseFlag = true
		case arg == "--data-dir":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag needs an argument: --data-dir")
			}
			dataDirFlag = args[i+1]
			i++
		case strings.HasPrefix(arg, "--data-dir="):
			dataDirFlag = strings.TrimPrefix(arg, "--data-dir=")
		default:
			rest = append(rest, arg)
		}
	}
	return rest, nil
}
