// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// SplitArgs splits a command line into words using POSIX shell quoting rules.
// Backslashes inside double quotes are kept unless they escape a quote,
// so `-j "\n--\n"` keeps its escapes for DecodeEscapes.
func SplitArgs(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("could not parse input: %w", err)
	}
	return words, nil
}

// QuoteArg quotes an argument so SplitArgs returns it as one word.
// Arguments that need no quoting are returned unchanged.
func QuoteArg(arg string) string {
	return shellquote.Join(arg)
}

// DecodeEscapes interprets backslash escapes such as \n, \t, \x41 and é.
// Unknown escapes and a trailing backslash are kept verbatim.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for len(s) > 0 {
		if s[0] != '\\' || len(s) == 1 {
			b.WriteByte(s[0])
			s = s[1:]
			continue
		}

		// UnquoteChar rejects both quote escapes when no quote char is given.
		if s[1] == '\'' || s[1] == '"' {
			b.WriteByte(s[1])
			s = s[2:]
			continue
		}

		value, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			b.WriteString(s[:2])
			s = s[2:]
			continue
		}
		b.WriteRune(value)
		s = tail
	}
	return b.String()
}
