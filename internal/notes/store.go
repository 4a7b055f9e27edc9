// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package notes holds the user's scripture notes as a book → chapter → verse
// tree, persists it as a JSON document, and resolves which notes apply to a
// given reference.
package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"verse-notes/internal/logger"
	"verse-notes/internal/reference"
)

// Chapter holds chapter-level notes and the notes of each verse key
// ("16" or a range such as "16-18") within it.
type Chapter struct {
	Notes  []string              `json:"notes"`
	Verses *orderedMap[[]string] `json:"verses"`
}

// Book holds book-level notes and its chapters keyed by chapter number.
type Book struct {
	Notes    []string              `json:"notes"`
	Chapters *orderedMap[*Chapter] `json:"chapters"`
}

// Section is one non-empty note list together with the reference it belongs to.
type Section struct {
	Ref   reference.Reference
	Notes []string
}

// Store is the in-memory note tree. When it has a path, every mutation is
// mirrored to that file as a whole-document overwrite.
type Store struct {
	path  string
	books *orderedMap[*Book]
}

// NewMemory returns an empty store that is never written to disk.
func NewMemory() *Store {
	return &Store{books: newOrderedMap[*Book]()}
}

// Load reads the notes document at path. A missing file yields an empty
// store. An unreadable or malformed file also yields an empty store, together
// with a *PersistenceError the caller should surface as a warning.
func Load(path string) (*Store, error) {
	s := &Store{path: path, books: newOrderedMap[*Book]()}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No notes file yet, starting empty", "path", path)
			return s, nil
		}
		return s, &PersistenceError{Op: "read", Path: path, Err: err}
	}

	doc := newOrderedMap[*Book]()
	if err := json.Unmarshal(data, doc); err != nil {
		return s, &PersistenceError{Op: "parse", Path: path, Err: err}
	}

	for _, name := range doc.Keys() {
		book, _ := doc.Get(name)
		s.adoptBook(name, book)
	}
	logger.Info("Notes loaded", "path", path, "books", s.books.Len())
	return s, nil
}

// adoptBook inserts a book read from disk under its normalized name, merging
// it into an existing entry when two spellings collapse to the same key.
func (s *Store) adoptBook(name string, book *Book) {
	if book == nil {
		book = &Book{}
	}
	normalizeBook(book)

	key := reference.TitleCase(name)
	existing, ok := s.books.Get(key)
	if !ok {
		s.books.Set(key, book)
		return
	}

	logger.Warn("Merging book entries with equivalent names", "book", key, "duplicate", name)
	existing.Notes = append(existing.Notes, book.Notes...)
	for _, num := range book.Chapters.Keys() {
		incoming, _ := book.Chapters.Get(num)
		current, ok := existing.Chapters.Get(num)
		if !ok {
			existing.Chapters.Set(num, incoming)
			continue
		}
		current.Notes = append(current.Notes, incoming.Notes...)
		for _, verseKey := range incoming.Verses.Keys() {
			list, _ := incoming.Verses.Get(verseKey)
			prev, _ := current.Verses.Get(verseKey)
			current.Verses.Set(verseKey, append(prev, list...))
		}
	}
}

// normalizeBook fills in any containers a hand-edited document left out, so
// every level always has both its note list and its child map.
func normalizeBook(b *Book) {
	if b.Notes == nil {
		b.Notes = []string{}
	}
	if b.Chapters == nil {
		b.Chapters = newOrderedMap[*Chapter]()
	}
	for _, num := range b.Chapters.Keys() {
		ch, _ := b.Chapters.Get(num)
		if ch == nil {
			ch = &Chapter{}
			b.Chapters.Set(num, ch)
		}
		normalizeChapter(ch)
	}
}

func normalizeChapter(ch *Chapter) {
	if ch.Notes == nil {
		ch.Notes = []string{}
	}
	if ch.Verses == nil {
		ch.Verses = newOrderedMap[[]string]()
	}
	for _, key := range ch.Verses.Keys() {
		if list, _ := ch.Verses.Get(key); list == nil {
			ch.Verses.Set(key, []string{})
		}
	}
}

// Path returns the file the store mirrors to, or "" for a memory store.
func (s *Store) Path() string {
	return s.path
}

// Empty reports whether the store has no books at all.
func (s *Store) Empty() bool {
	return s.books.Len() == 0
}

// Books returns the book names in insertion order.
func (s *Store) Books() []string {
	return slices.Clone(s.books.Keys())
}

// Save writes the whole document to the store's path with 4-space indentation.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s.books); err != nil {
		return &PersistenceError{Op: "encode", Path: s.path, Err: err}
	}

	// Write with permissions rw-r----- (0640)
	if err := os.WriteFile(s.path, buf.Bytes(), 0640); err != nil {
		logger.Error("Failed to save notes", "path", s.path, "error", err)
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	logger.Debug("Notes saved", "path", s.path)
	return nil
}

// Add appends text to the note list addressed by ref, creating the book,
// chapter and verse containers it needs. It returns the display name of the
// target ("John", "John 3" or "John 3:16"). The note is always added in
// memory; a non-nil error means only that saving it failed.
func (s *Store) Add(ref reference.Reference, text string) (string, error) {
	ref.Book = reference.TitleCase(ref.Book)

	book, ok := s.books.Get(ref.Book)
	if !ok {
		book = &Book{Notes: []string{}, Chapters: newOrderedMap[*Chapter]()}
		s.books.Set(ref.Book, book)
	}

	switch ref.Scope() {
	case reference.ScopeBook:
		book.Notes = append(book.Notes, text)
	default:
		chapter, ok := book.Chapters.Get(ref.Chapter)
		if !ok {
			chapter = &Chapter{Notes: []string{}, Verses: newOrderedMap[[]string]()}
			book.Chapters.Set(ref.Chapter, chapter)
		}
		if ref.Scope() == reference.ScopeChapter {
			chapter.Notes = append(chapter.Notes, text)
		} else {
			list, _ := chapter.Verses.Get(ref.VerseKey)
			chapter.Verses.Set(ref.VerseKey, append(list, text))
		}
	}

	logger.Info("Note added", "reference", ref.String(), "scope", ref.Scope().String())
	return ref.String(), s.Save()
}

// Delete removes the note at the 1-based position from the list addressed by
// ref and returns its text. It fails with ErrNotFound when any container on
// the way is missing and with a *RangeError when position is out of bounds;
// in both cases nothing changes. A *PersistenceError is returned together
// with the removed text when the deletion succeeded but could not be saved.
func (s *Store) Delete(ref reference.Reference, position int) (string, error) {
	ref.Book = reference.TitleCase(ref.Book)

	list, set, err := s.list(ref)
	if err != nil {
		return "", err
	}
	if position < 1 || position > len(list) {
		return "", &RangeError{Position: position, Len: len(list)}
	}

	removed := list[position-1]
	set(slices.Delete(list, position-1, position))

	logger.Info("Note deleted", "reference", ref.String(), "position", position)
	return removed, s.Save()
}

// list finds the note list addressed by ref and a setter that stores a
// modified copy back in place.
func (s *Store) list(ref reference.Reference) ([]string, func([]string), error) {
	notFound := fmt.Errorf("%w for reference '%s'", ErrNotFound, ref)

	book, ok := s.books.Get(ref.Book)
	if !ok {
		return nil, nil, notFound
	}
	if ref.Scope() == reference.ScopeBook {
		return book.Notes, func(l []string) { book.Notes = l }, nil
	}

	chapter, ok := book.Chapters.Get(ref.Chapter)
	if !ok {
		return nil, nil, notFound
	}
	if ref.Scope() == reference.ScopeChapter {
		return chapter.Notes, func(l []string) { chapter.Notes = l }, nil
	}

	verses, ok := chapter.Verses.Get(ref.VerseKey)
	if !ok {
		return nil, nil, notFound
	}
	return verses, func(l []string) { chapter.Verses.Set(ref.VerseKey, l) }, nil
}

// All walks the store in insertion order (book, then each chapter, then
// each verse key) and returns every non-empty note list.
func (s *Store) All() []Section {
	var sections []Section
	for _, name := range s.books.Keys() {
		book, _ := s.books.Get(name)
		if len(book.Notes) > 0 {
			sections = append(sections, Section{
				Ref:   reference.Reference{Book: name},
				Notes: slices.Clone(book.Notes),
			})
		}

		for _, num := range book.Chapters.Keys() {
			chapter, _ := book.Chapters.Get(num)
			if len(chapter.Notes) > 0 {
				sections = append(sections, Section{
					Ref:   reference.Reference{Book: name, Chapter: num},
					Notes: slices.Clone(chapter.Notes),
				})
			}

			for _, key := range chapter.Verses.Keys() {
				list, _ := chapter.Verses.Get(key)
				if len(list) > 0 {
					sections = append(sections, Section{
						Ref:   reference.Reference{Book: name, Chapter: num, VerseKey: key},
						Notes: slices.Clone(list),
					})
				}
			}
		}
	}
	return sections
}
