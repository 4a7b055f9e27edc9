// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package reference parses free-text scripture references such as
// "John 3:16-17", "1 John 3" or "Song of Solomon" into their book, chapter
// and verse-key parts.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidReference is returned when text cannot be read as a reference.
var ErrInvalidReference = errors.New("invalid reference format")

// Scope describes how specific a reference is.
type Scope int

const (
	ScopeBook Scope = iota
	ScopeChapter
	ScopeVerse
)

func (s Scope) String() string {
	switch s {
	case ScopeBook:
		return "Book"
	case ScopeChapter:
		return "Chapter"
	default:
		return "Verse"
	}
}

// Reference is a parsed (book, chapter, verse-key) coordinate.
// An empty Chapter means the whole book, an empty VerseKey the whole chapter.
type Reference struct {
	// Book is the title-cased book name, including any leading number ("1 John").
	Book string

	// Chapter is the chapter digits as typed ("3").
	Chapter string

	// VerseKey is a single verse ("16"), a range ("16-18") or a comma list.
	VerseKey string
}

// Scope reports which note list the reference addresses.
func (r Reference) Scope() Scope {
	switch {
	case r.Chapter == "":
		return ScopeBook
	case r.VerseKey == "":
		return ScopeChapter
	default:
		return ScopeVerse
	}
}

// String renders the reference at its own scope: "John", "John 3" or "John 3:16".
func (r Reference) String() string {
	switch r.Scope() {
	case ScopeBook:
		return r.Book
	case ScopeChapter:
		return r.Book + " " + r.Chapter
	default:
		return fmt.Sprintf("%s %s:%s", r.Book, r.Chapter, r.VerseKey)
	}
}

// refLexer keeps whitespace significant: a book prefix is exactly one digit
// followed by one whitespace character, and verse keys may not contain spaces.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Prefix", Pattern: `[0-9][ \t\r\n\f\v]`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Space", Pattern: `[ \t\r\n\f\v]+`},
	{Name: "Punct", Pattern: `[:\-,]`},
})

// fullGrammar matches "<prefix?><book words><chapter?>(:<verse key>)?".
type fullGrammar struct {
	Prefix  string        `parser:"@Prefix?"`
	Name    []string      `parser:"@(Word | Space)+"`
	Chapter string        `parser:"@Int?"`
	Verses  *verseGrammar `parser:"( \":\" @@ )?"`
}

type verseGrammar struct {
	Key []string `parser:"Space? @(Int | \"-\" | \",\")+"`
}

// bookGrammar matches a bare book name with nothing after it.
type bookGrammar struct {
	Prefix string   `parser:"@Prefix?"`
	Name   []string `parser:"@(Word | Space)+"`
}

var (
	fullParser = participle.MustBuild[fullGrammar](participle.Lexer(refLexer))
	bookParser = participle.MustBuild[bookGrammar](participle.Lexer(refLexer))
)

// Parse reads a reference from text. Supported shapes:
//   - "John" (book only)
//   - "John 3" (book and chapter)
//   - "John 3:16", "John 3:16-18", "John 3: 16,18" (verse keys)
//   - "1 John 3:16", "Song of Solomon 2" (numbered and multi-word books)
//
// The book name is title-cased so that "jOhn" and "JOHN" resolve identically.
func Parse(text string) (Reference, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reference{}, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	if parsed, err := fullParser.ParseString("", text); err == nil {
		ref := Reference{
			Book:    TitleCase(strings.TrimSpace(parsed.Prefix + strings.Join(parsed.Name, ""))),
			Chapter: parsed.Chapter,
		}
		if parsed.Verses != nil {
			ref.VerseKey = strings.Join(parsed.Verses.Key, "")
		}
		return ref, nil
	}

	if _, err := bookParser.ParseString("", text); err == nil {
		return Reference{Book: TitleCase(text)}, nil
	}

	return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, text)
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
