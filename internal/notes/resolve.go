// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package notes

import (
	"slices"
	"strconv"
	"strings"

	"verse-notes/internal/reference"
)

// Level selects how many note scopes are shown for a verse. Each level
// includes everything below it.
type Level int

const (
	LevelNone       Level = iota // no notes
	LevelIndividual              // notes on the exact verse key
	LevelGroup                   // + notes on ranges containing the verse
	LevelChapter                 // + chapter notes
	LevelBook                    // + book notes
)

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= LevelNone && l <= LevelBook
}

// Resolution is the set of notes that apply to one reference, split by scope.
type Resolution struct {
	Book       []string
	Chapter    []string
	Group      []string
	Individual []string
}

// Empty reports whether no scope has any notes.
func (r Resolution) Empty() bool {
	return len(r.Book) == 0 && len(r.Chapter) == 0 && len(r.Group) == 0 && len(r.Individual) == 0
}

// Resolve collects the notes that apply to ref at the given level. Lookup
// stops at the first missing container, returning what was gathered so far.
//
// Individual notes use an exact verse-key match, so "17" does not pick up a
// note stored under "16-18"; that note is reported as a group note instead.
func (s *Store) Resolve(ref reference.Reference, level Level) Resolution {
	var res Resolution
	if ref.Book == "" || level <= LevelNone {
		return res
	}

	book, ok := s.books.Get(reference.TitleCase(ref.Book))
	if !ok {
		return res
	}
	if level >= LevelBook {
		res.Book = slices.Clone(book.Notes)
	}

	if ref.Chapter == "" {
		return res
	}
	chapter, ok := book.Chapters.Get(ref.Chapter)
	if !ok {
		return res
	}
	if level >= LevelChapter {
		res.Chapter = slices.Clone(chapter.Notes)
	}

	if ref.VerseKey == "" || chapter.Verses.Len() == 0 {
		return res
	}
	if level >= LevelIndividual {
		list, _ := chapter.Verses.Get(ref.VerseKey)
		res.Individual = slices.Clone(list)
	}
	if level >= LevelGroup {
		res.Group = groupNotes(chapter.Verses, ref.VerseKey)
	}
	return res
}

// groupNotes returns the notes of every stored "start-end" key whose range
// contains the leading verse number of target. Keys that are not a pair of
// integers are skipped. A target without a numeric start yields nothing.
func groupNotes(verses *orderedMap[[]string], target string) []string {
	start, _, _ := strings.Cut(target, "-")
	verse, err := strconv.Atoi(start)
	if err != nil {
		return nil
	}

	var group []string
	for _, key := range verses.Keys() {
		if key == target || !strings.Contains(key, "-") {
			continue
		}
		lo, hi, ok := parseRange(key)
		if !ok {
			continue
		}
		if lo <= verse && verse <= hi {
			list, _ := verses.Get(key)
			group = append(group, list...)
		}
	}
	return group
}

func parseRange(key string) (int, int, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
