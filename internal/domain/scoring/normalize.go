package scoring

import (
	"strings"
	"unicode"
)

// Normalize produces the join key between ingredient lists and the rule table:
// lowercased, keeping only [a-z0-9], whitespace and '-', then trimmed.
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	var builder strings.Builder
	builder.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune(r)
		}
	}
	return strings.TrimSpace(builder.String())
}

// NormalizeAll maps Normalize over names, preserving order and duplicates.
func NormalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = Normalize(name)
	}
	return out
}
