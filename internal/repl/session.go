// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package repl interprets one line of user input at a time: verse queries
// with their flags, and the slash commands that manage notes.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"verse-notes/internal/display"
	"verse-notes/internal/logger"
	"verse-notes/internal/notes"
	"verse-notes/internal/reference"
	"verse-notes/internal/util"
	"verse-notes/internal/verses"
)

// Prompt is shown before each line of input, after a blank line.
const Prompt = "VERSE_NOTES > "

// ErrLookupUnavailable is returned for verse queries when no lookup is configured.
var ErrLookupUnavailable = errors.New("verse lookup is not configured")

// Lookuper fetches verses for a free-text query.
type Lookuper interface {
	Lookup(ctx context.Context, query string) ([]verses.Verse, error)
}

// Session holds what a REPL needs to answer input lines.
type Session struct {
	Store  *notes.Store
	Lookup Lookuper
	// Copy places text on the clipboard.
	Copy      func(text string) error
	Out       io.Writer
	WrapWidth int
	Version   string
}

// Handle processes one input line and reports whether the user asked to quit.
// All errors are reported to Out; none end the session.
func (s *Session) Handle(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "quit", "exit":
		fmt.Fprintln(s.Out, "Goodbye!")
		return true
	case "":
		return false
	}

	words, err := util.SplitArgs(line)
	if err != nil {
		s.errorf("Mismatched quotes in input. %v", err)
		return false
	}

	if strings.HasPrefix(line, "/") {
		s.command(words)
		return false
	}

	q, err := ParseQuery(words)
	if err != nil {
		s.errorf("%v", err)
		return false
	}
	if q.Text == "" {
		return false
	}
	_ = s.Query(ctx, q)
	return false
}

func (s *Session) command(words []string) {
	name := strings.ToLower(words[0])
	logger.Debug("REPL command", "command", name, "args", len(words)-1)

	switch name {
	case "/help":
		s.Help()
	case "/addnote":
		if len(words) < 3 {
			fmt.Fprintln(s.Out, `Usage: /addnote "<reference>" <note>`)
			return
		}
		_ = s.AddNote(words[1], strings.Join(words[2:], " "))
	case "/delnote":
		if len(words) != 3 {
			fmt.Fprintln(s.Out, `Usage: /delnote "<reference>" <note_number>`)
			return
		}
		_ = s.DeleteNote(words[1], words[2])
	case "/allnotes":
		s.AllNotes()
	default:
		fmt.Fprintf(s.Out, "Unknown command: %s\n", name)
	}
}

// Help prints the banner with the supported flags and commands.
func (s *Session) Help() {
	display.HeaderColor.Fprintf(s.Out, "--- Bible Verse Fetcher %s ---\n", s.Version)
	fmt.Fprint(s.Out, `Enter a verse reference (e.g., 'John 3:16').
Flags (can be placed anywhere):
  -c : Copy the result to the clipboard.
  -s : Add a blank line between verses when copying (spacious).
  -j "<joiner>" : Use a custom joiner for copied text (e.g., -j "\n--\n").
  -v : View notes (Individual + Group). Alias for '-n 2'.
  -n <level> : View notes by level:
     1: Individual only
     2: Individual + Group (default for -v)
     3: Individual + Group + Chapter
     4: All (Book, Chapter, Group, Individual)
Commands:
  /help : Show this help message.
  /addnote "<reference>" <note text>
  /delnote "<reference>" <note_number>
  /allnotes
Type 'quit' or 'exit' to end the program.
`)
}

// AddNote parses refText and appends text to the matching note list.
func (s *Session) AddNote(refText, text string) error {
	ref, err := reference.Parse(refText)
	if err != nil {
		s.errorf("Invalid reference format '%s'", refText)
		return &UserInputError{Msg: err.Error()}
	}

	name, err := s.Store.Add(ref, text)
	display.SuccessColor.Fprintf(s.Out, "✅ Note added for %s: '%s'\n", ref.Scope(), name)
	if err != nil {
		s.warnSave(err)
		return err
	}
	return nil
}

// DeleteNote removes the note at the 1-based position numText from the list
// addressed by refText.
func (s *Session) DeleteNote(refText, numText string) error {
	ref, err := reference.Parse(refText)
	if err != nil {
		s.errorf("Invalid reference format '%s'", refText)
		return &UserInputError{Msg: err.Error()}
	}

	position, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		s.errorf("Note number must be an integer.")
		return &UserInputError{Msg: "note number must be an integer"}
	}

	removed, err := s.Store.Delete(ref, position)
	var rangeErr *notes.RangeError
	var persistErr *notes.PersistenceError
	switch {
	case errors.Is(err, notes.ErrNotFound):
		s.errorf("No notes found for reference '%s'.", refText)
		return err
	case errors.As(err, &rangeErr):
		s.errorf("Invalid note number. Must be between 1 and %d.", rangeErr.Len)
		return err
	case errors.As(err, &persistErr):
		s.deleted(position, ref, removed)
		s.warnSave(err)
		return err
	case err != nil:
		s.errorf("%v", err)
		return err
	}

	s.deleted(position, ref, removed)
	return nil
}

func (s *Session) deleted(position int, ref reference.Reference, removed string) {
	display.SuccessColor.Fprintf(s.Out, "✅ Deleted note #%d for '%s': '%s'\n", position, ref, removed)
}

// AllNotes prints every stored note.
func (s *Session) AllNotes() {
	display.AllNotes(s.Out, s.Store)
}

// Query looks up the verses for q, prints them with their notes, and copies
// them when asked.
func (s *Session) Query(ctx context.Context, q Query) error {
	if s.Lookup == nil {
		s.errorf("%v", ErrLookupUnavailable)
		return ErrLookupUnavailable
	}

	found, err := s.Lookup.Lookup(ctx, q.Text)
	if err != nil {
		s.reportLookupError(err)
		return err
	}
	if len(found) == 0 {
		fmt.Fprintf(s.Out, "Verse not found for '%s'.\n", q.Text)
		return nil
	}

	lines := display.Verses(s.Out, found, s.Store, q.Level, s.WrapWidth)

	if q.Copy {
		if s.Copy == nil {
			s.errorf("Clipboard is not available.")
			return errors.New("clipboard is not available")
		}
		if err := s.Copy(strings.Join(lines, display.Joiner(q.Spacious, q.Joiner))); err != nil {
			logger.Warn("Clipboard write failed", "error", err)
			s.errorf("Could not copy to clipboard: %v", err)
			return err
		}
		display.SuccessColor.Fprintln(s.Out, "✅ Verses copied to clipboard.")
	}
	return nil
}

func (s *Session) reportLookupError(err error) {
	logger.Error("Verse lookup failed", "error", err)

	var upErr *verses.UpstreamError
	if errors.As(err, &upErr) && upErr.Undecodable() {
		display.ErrorColor.Fprintln(s.Out, "\n❌ Could not parse the response from the server.")
		return
	}
	display.ErrorColor.Fprintf(s.Out, "\n❌ Network or API error: %v\n", err)
}

func (s *Session) errorf(format string, args ...any) {
	display.ErrorColor.Fprintf(s.Out, "Error: "+format+"\n", args...)
}

func (s *Session) warnSave(err error) {
	logger.Warn("Notes not saved", "error", err)
	display.WarnColor.Fprintf(s.Out, "Warning: notes were not saved: %v\n", err)
}
