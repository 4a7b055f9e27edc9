// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package display renders verses, note blocks, and note listings for the console.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"verse-notes/internal/notes"
	"verse-notes/internal/reference"
	"verse-notes/internal/verses"
)

// Colors used across console output. fatih/color disables them when output is not a terminal.
var (
	RefColor     = color.New(color.FgCyan, color.Bold)
	LabelColor   = color.New(color.FgYellow)
	HeaderColor  = color.New(color.Bold)
	SuccessColor = color.New(color.FgGreen)
	ErrorColor   = color.New(color.FgRed)
	WarnColor    = color.New(color.FgYellow)
	DimColor     = color.New(color.Faint)
)

const ruleWidth = 40

// Rule is the separator line framing verse output.
var Rule = strings.Repeat("-", ruleWidth)

// NotesBlock prints the resolved notes from broadest to narrowest scope,
// skipping empty scopes. Nothing is printed when every scope is empty.
func NotesBlock(w io.Writer, res notes.Resolution) {
	scopes := []struct {
		label string
		list  []string
	}{
		{"Book", res.Book},
		{"Chapter", res.Chapter},
		{"Group", res.Group},
		{"Individual", res.Individual},
	}

	headerPrinted := false
	for _, scope := range scopes {
		if len(scope.list) == 0 {
			continue
		}
		if !headerPrinted {
			HeaderColor.Fprintln(w, "|| Notes:")
			headerPrinted = true
		}
		LabelColor.Fprintf(w, "  [%s]\n", scope.label)
		for i, note := range scope.list {
			fmt.Fprintf(w, "    %d. %s\n", i+1, note)
		}
	}
}

// Verses prints each verse with its notes at the given level and returns the
// "<ref> <text>" lines for copying. wrapWidth <= 0 disables wrapping.
func Verses(w io.Writer, vs []verses.Verse, store *notes.Store, level notes.Level, wrapWidth int) []string {
	copyLines := make([]string, 0, len(vs))

	fmt.Fprintln(w, Rule)
	for _, v := range vs {
		fmt.Fprintln(w)
		RefColor.Fprintln(w, v.Ref)
		text := v.Text
		if wrapWidth > 0 {
			text = wordwrap.String(text, wrapWidth)
		}
		fmt.Fprintln(w, text)

		if level > notes.LevelNone && store != nil {
			// Notes follow the reference the API returned, not the query.
			if ref, err := reference.Parse(v.Ref); err == nil {
				NotesBlock(w, store.Resolve(ref, level))
			}
		}

		copyLines = append(copyLines, v.Ref+" "+v.Text)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule)
	fmt.Fprintf(w, "Found %d verse(s).\n", len(vs))

	return copyLines
}

// Joiner picks the separator for copied verses: an explicit joiner wins,
// then spacious (blank line), then a single newline.
func Joiner(spacious bool, custom *string) string {
	switch {
	case custom != nil:
		return *custom
	case spacious:
		return "\n\n"
	default:
		return "\n"
	}
}

// AllNotes lists every stored note grouped by reference, indented by scope.
func AllNotes(w io.Writer, store *notes.Store) {
	if store.Empty() {
		fmt.Fprintln(w, "No notes found.")
		return
	}

	HeaderColor.Fprintln(w, "\n--- All Notes ---")
	for _, sec := range store.All() {
		var header, item string
		switch sec.Ref.Scope() {
		case reference.ScopeBook:
			header, item = "\n", "  "
		case reference.ScopeChapter:
			header, item = "  ", "    "
		default:
			header, item = "    ", "      "
		}
		fmt.Fprint(w, header)
		RefColor.Fprintf(w, "[%s]\n", sec.Ref)
		for i, note := range sec.Notes {
			fmt.Fprintf(w, "%s%d. %s\n", item, i+1, note)
		}
	}
	fmt.Fprintln(w, "-----------------")
}
