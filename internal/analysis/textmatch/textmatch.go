// Package textmatch implements the word-boundary search used for both ticker
// matching and sentiment keyword counting, so the two share one tokenization policy.
//
// A token is a maximal run of letters or digits; everything else is a boundary.
// Comparison is case-insensitive.
package textmatch

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on every rune that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isBoundary)
}

// Index returns the position of the first occurrence of phrase in tokens at or after from,
// or -1. An empty phrase never matches.
func Index(tokens, phrase []string, from int) int {
	if len(phrase) == 0 {
		return -1
	}
	if from < 0 {
		from = 0
	}
	for i := from; i+len(phrase) <= len(tokens); i++ {
		if hasPrefix(tokens[i:], phrase) {
			return i
		}
	}
	return -1
}

// Count returns the number of non-overlapping occurrences of phrase in tokens.
func Count(tokens, phrase []string) int {
	n := 0
	for i := Index(tokens, phrase, 0); i >= 0; i = Index(tokens, phrase, i+len(phrase)) {
		n++
	}
	return n
}

// ContainsWord reports whether word appears in text as a standalone token sequence.
// "A" matches "Buy A shares" but not "CAT"; "BRK.B" matches "BRK.B" and "brk b".
func ContainsWord(text, word string) bool {
	return Index(Tokenize(text), Tokenize(word), 0) >= 0
}

// ContainsFold reports whether sub occurs in text ignoring case.
// Blank sub never matches.
func ContainsFold(text, sub string) bool {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(sub))
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func hasPrefix(tokens, phrase []string) bool {
	for j, p := range phrase {
		if tokens[j] != p {
			return false
		}
	}
	return true
}
