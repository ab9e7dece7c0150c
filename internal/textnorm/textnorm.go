// Package textnorm provides the deterministic text normalization and
// tokenization shared by sentiment scoring, flag detection, and validation.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// A token is either a hashtag (# followed by word characters, internal
// hyphens allowed) or a bare run of word characters. Everything else is a
// separator. \p{M} keeps decomposed input tokenizing the same as composed.
var tokenPattern = regexp.MustCompile(`#[\p{L}\p{M}\p{N}_]+(?:-[\p{L}\p{M}\p{N}_]+)*|[\p{L}\p{M}\p{N}_]+`)

// stripMarks decomposes to NFKD and removes combining marks, yielding an
// ASCII-foldable form for accented Latin text.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize lower-cases a token and strips diacritical marks. The result is
// only used for lexicon and flag matching, never for display.
func Normalize(token string) string {
	lowered := strings.ToLower(token)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// Tokenize splits text into raw tokens, preserving original casing and any
// leading '#'. Locale-independent by construction.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// ContainsFold reports whether fragment appears in text ignoring case and
// accents on both sides.
func ContainsFold(text, fragment string) bool {
	return strings.Contains(Normalize(text), Normalize(fragment))
}
