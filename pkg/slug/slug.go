// Package slug derives URL-safe store identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a name contains no usable characters.
const Fallback = "store"

var (
	whitespace   = regexp.MustCompile(`\s+`)
	nonWord      = regexp.MustCompile(`[^a-z0-9_-]+`)
	hyphenRepeat = regexp.MustCompile(`-{2,}`)
)

// Make lowercases and trims the name, turns whitespace runs into hyphens, drops every
// character that is not a word character or hyphen, and collapses hyphen runs.
// Accented letters are folded to their base letter first ("Café" -> "cafe").
func Make(name string) string {
	s := fold(strings.ToLower(strings.TrimSpace(name)))
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = hyphenRepeat.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// WithSuffix appends a numeric disambiguator to a base slug.
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
