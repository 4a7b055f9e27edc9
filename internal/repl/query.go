// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package repl

import (
	"fmt"
	"strconv"
	"strings"

	"verse-notes/internal/notes"
	"verse-notes/internal/util"
)

// UserInputError reports input the user has to correct. It is shown inline
// and never changes any state.
type UserInputError struct {
	Msg string
}

func (e *UserInputError) Error() string {
	return e.Msg
}

func inputErrorf(format string, args ...any) error {
	return &UserInputError{Msg: fmt.Sprintf(format, args...)}
}

// Query is a verse lookup request with its output options.
type Query struct {
	Text     string
	Copy     bool
	Spacious bool
	// Joiner overrides the separator between copied verses when set.
	Joiner *string
	Level  notes.Level
}

// HasOptions reports whether any flag was given.
func (q Query) HasOptions() bool {
	return q.Copy || q.Spacious || q.Joiner != nil || q.Level > notes.LevelNone
}

// ParseQuery reads flags from words and joins the remaining words into the
// query text. Flags may appear anywhere:
//
//	-c          copy the verses to the clipboard
//	-s          separate copied verses with a blank line
//	-j <text>   custom separator for copied verses, backslash escapes decoded
//	-v          show individual and group notes unless -n chose a level
//	-n <1-4>    show notes up to the given level
func ParseQuery(words []string) (Query, error) {
	var q Query
	var text []string

	for i := 0; i < len(words); i++ {
		switch words[i] {
		case "-c":
			q.Copy = true
		case "-s":
			q.Spacious = true
		case "-v":
			if q.Level == notes.LevelNone {
				q.Level = notes.LevelGroup
			}
		case "-j":
			if i+1 >= len(words) {
				return Query{}, inputErrorf("-j flag requires a joiner string argument.")
			}
			joiner := util.DecodeEscapes(words[i+1])
			q.Joiner = &joiner
			i++
		case "-n":
			if i+1 >= len(words) {
				return Query{}, inputErrorf("-n flag requires a level number (1-4).")
			}
			level, err := strconv.Atoi(words[i+1])
			if err != nil {
				return Query{}, inputErrorf("-n flag requires a number (1-4).")
			}
			if level < int(notes.LevelIndividual) || level > int(notes.LevelBook) {
				return Query{}, inputErrorf("-n level must be between 1 and 4.")
			}
			q.Level = notes.Level(level)
			i++
		default:
			text = append(text, words[i])
		}
	}

	q.Text = strings.Join(text, " ")
	if q.Text == "" && q.HasOptions() {
		return Query{}, inputErrorf("Flags must be used with a verse reference.")
	}
	return q, nil
}
