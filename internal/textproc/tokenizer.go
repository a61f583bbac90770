// Package textproc turns raw text into normalized tokens for relevance scoring.
//
// Tokens are lowercased runs of letters, digits and hyphens. Everything else
// separates tokens. Filtering drops tokens shorter than MinTokenLength runes
// (after trimming hyphens) and tokens in the Polish + English stop-word table.
// There is no stemming: inflected forms stay distinct terms.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the minimum rune length of a kept token.
const MinTokenLength = 3

// Normalize lowercases s, composes it to NFC and trims surrounding whitespace.
// Topic phrases go through Normalize before hashing so that cache keys are
// stable under case and whitespace variation.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(s)))
}

// Split lowercases text and splits it on every rune that is not a letter,
// digit or hyphen. The fields are returned untrimmed and unfiltered so callers
// can address them by position.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	lower := Lower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !isTokenRune(r)
	})
}

// Clean trims hyphens from a split field and reports whether the result
// survives the length and stop-word filters.
func Clean(field string) (string, bool) {
	w := strings.Trim(field, "-")
	if utf8.RuneCountInString(w) < MinTokenLength {
		return w, false
	}
	if IsStopWord(w) {
		return w, false
	}
	return w, true
}

// Tokenize splits text and keeps only the tokens that survive Clean, in order.
func Tokenize(text string) []string {
	fields := Split(text)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if w, ok := Clean(f); ok {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-'
}

// Lower lowercases and NFC-composes text without splitting it.
func Lower(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}
