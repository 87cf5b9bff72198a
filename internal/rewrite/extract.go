// Package rewrite builds model rewrite requests and normalizes the loosely
// structured JSON that models send back.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	jsonFenceOpen = regexp.MustCompile("(?i)^```json\\s*")
	fenceOpen     = regexp.MustCompile("^```\\s*")
	fenceClose    = regexp.MustCompile("```\\s*$")
)

// stripCodeFences removes one leading ```json (or bare ```) fence and one
// trailing fence, then trims.
func stripCodeFences(s string) string {
	s = jsonFenceOpen.ReplaceAllLiteralString(s, "")
	s = fenceOpen.ReplaceAllLiteralString(s, "")
	s = fenceClose.ReplaceAllLiteralString(s, "")
	return strings.TrimSpace(s)
}

// firstObject returns the first balanced top-level {...} in s, skipping braces
// inside string literals. A closing brace at depth zero is ignored.
func firstObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ParseModelJSON recovers a JSON value from raw model output. It accepts
// fenced JSON, bare JSON and JSON embedded in prose. The boolean is false when
// nothing parseable is found.
func ParseModelJSON(raw string) (gjson.Result, bool) {
	if raw == "" {
		return gjson.Result{}, false
	}

	cleaned := stripCodeFences(raw)
	if !gjson.Valid(cleaned) {
		cleaned = firstObject(cleaned)
		if cleaned == "" || !gjson.Valid(cleaned) {
			return gjson.Result{}, false
		}
	}
	return gjson.Parse(lastWins(gjson.Parse(cleaned))), true
}

// lastWins re-encodes v so a key repeated within an object keeps its last
// value, the way JSON.parse resolves duplicates. gjson alone returns the
// first. Keys stay in order of first appearance; scalars keep their raw text.
func lastWins(v gjson.Result) string {
	switch {
	case v.IsObject():
		var order []string
		keys := make(map[string]string)
		vals := make(map[string]string)
		v.ForEach(func(k, val gjson.Result) bool {
			if _, seen := vals[k.Str]; !seen {
				order = append(order, k.Str)
				keys[k.Str] = k.Raw
			}
			vals[k.Str] = lastWins(val)
			return true
		})
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range order {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(keys[k])
			b.WriteByte(':')
			b.WriteString(vals[k])
		}
		b.WriteByte('}')
		return b.String()

	case v.IsArray():
		var b strings.Builder
		b.WriteByte('[')
		first := true
		v.ForEach(func(_, val gjson.Result) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(lastWins(val))
			return true
		})
		b.WriteByte(']')
		return b.String()

	default:
		return v.Raw
	}
}
