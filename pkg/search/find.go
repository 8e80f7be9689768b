// Package search finds literal, case-insensitive matches in display text and
// turns replacements into storage edits.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is the byte range [Start, End) of one occurrence in display text.
type Match struct {
	Start int
	End   int
}

// Len returns the match length in bytes.
func (m Match) Len() int { return m.End - m.Start }

// Blank reports whether query has nothing to search for.
func Blank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Find returns the non-overlapping occurrences of query in text, leftmost
// first, compared with Unicode simple case folding. A blank query matches
// nothing.
func Find(text, query string) []Match {
	if Blank(query) {
		return nil
	}

	var matches []Match
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, query); ok {
			matches = append(matches, Match{Start: i, End: end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return matches
}

// matchAt compares query against text starting at offset and returns the end
// offset of the match.
func matchAt(text string, offset int, query string) (int, bool) {
	pos := offset
	for _, qr := range query {
		if pos >= len(text) {
			return 0, false
		}
		tr, size := utf8.DecodeRuneInString(text[pos:])
		if !foldEqual(tr, qr) {
			return 0, false
		}
		pos += size
	}
	return pos, true
}

// foldEqual reports whether two runes are equal under simple case folding.
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		return 'A' <= a && a <= 'Z' && a+'a'-'A' == b ||
			'A' <= b && b <= 'Z' && b+'a'-'A' == a
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
