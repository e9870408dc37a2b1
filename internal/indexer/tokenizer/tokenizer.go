// Package tokenizer turns raw text into index terms. It lower-cases input
// and splits on non-alphanumeric boundaries. There is no stop-word removal
// and no stemming, so "cat" and "cats" are distinct terms.
package tokenizer

import (
	"strings"
	"unicode"
)

// Terms breaks text into lower-cased terms in left-to-right order. Empty or
// whitespace-only text yields an empty slice.
func Terms(text string) []string {
	return split(text)
}

// Normalize reduces s to a single term. ok is false when s does not
// normalise to exactly one term.
func Normalize(s string) (term string, ok bool) {
	words := split(s)
	if len(words) != 1 {
		return "", false
	}
	return words[0], true
}

func split(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
