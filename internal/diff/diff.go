// Package diff aligns two texts word by word.
package diff

import (
	"unicode"
	"unicode/utf8"
)

// Op tags a diff segment
type Op string

const (
	OpEqual  Op = "equal"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Segment is one token of an aligned diff
type Segment struct {
	Op   Op     `json:"type" yaml:"type"`
	Text string `json:"text" yaml:"text"`
}

// Tokenize splits s into alternating runs of whitespace and non-whitespace.
// Concatenating the tokens yields s.
func Tokenize(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// Words computes a token-level diff of original against improved using the
// longest common subsequence. Backtracking consumes the original token first
// on ties, so a replaced word renders as the addition followed by the removal.
func Words(original, improved string) []Segment {
	a := Tokenize(original)
	b := Tokenize(improved)

	// lcs[i][j] is the LCS length of a[:i] and b[:j].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				lcs[i][j] = lcs[i-1][j-1] + 1
			} else {
				lcs[i][j] = max(lcs[i-1][j], lcs[i][j-1])
			}
		}
	}

	segments := make([]Segment, 0, len(a)+len(b))
	i, j := len(a), len(b)
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			segments = append(segments, Segment{OpEqual, a[i-1]})
			i--
			j--
		case lcs[i-1][j] >= lcs[i][j-1]:
			segments = append(segments, Segment{OpRemove, a[i-1]})
			i--
		default:
			segments = append(segments, Segment{OpAdd, b[j-1]})
			j--
		}
	}
	for ; i > 0; i-- {
		segments = append(segments, Segment{OpRemove, a[i-1]})
	}
	for ; j > 0; j-- {
		segments = append(segments, Segment{OpAdd, b[j-1]})
	}

	for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
		segments[l], segments[r] = segments[r], segments[l]
	}
	return segments
}

// Original reassembles the original text from segments
func Original(segments []Segment) string {
	return join(segments, OpAdd)
}

// Improved reassembles the improved text from segments
func Improved(segments []Segment) string {
	return join(segments, OpRemove)
}

func join(segments []Segment, skip Op) string {
	n := 0
	for _, s := range segments {
		if s.Op != skip {
			n += len(s.Text)
		}
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		if s.Op != skip {
			buf = append(buf, s.Text...)
		}
	}
	return string(buf)
}

// Stats counts changed tokens, ignoring whitespace-only tokens
type Stats struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
	Equal   int `json:"equal" yaml:"equal"`
}

// Count summarizes segments
func Count(segments []Segment) Stats {
	var st Stats
	for _, s := range segments {
		if isSpace(s.Text) {
			continue
		}
		switch s.Op {
		case OpAdd:
			st.Added++
		case OpRemove:
			st.Removed++
		default:
			st.Equal++
		}
	}
	return st
}

func isSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}
