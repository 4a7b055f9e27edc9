// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package notes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the book, chapter or verse key addressed by a
	// reference has no container in the store.
	ErrNotFound = errors.New("no notes found")

	// ErrOutOfRange means a note position falls outside its list.
	ErrOutOfRange = errors.New("note number out of range")
)

// RangeError reports a 1-based position that is not in [1, Len].
type RangeError struct {
	Position int
	Len      int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid note number %d: must be between 1 and %d", e.Position, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// PersistenceError wraps a failure to read, parse or write the notes document.
type PersistenceError struct {
	Op   string // "read", "parse", "encode" or "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s notes file %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
