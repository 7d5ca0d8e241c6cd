// Package textproc holds the text normalization shared by the vectorizer and the keyword matcher.
package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest letter run kept as a token.
const MinTokenLength = 2

// Fold lower-cases the text and strips diacritics, so "Résumé" becomes "resume".
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		// transform only fails on invalid state; fall back to the raw text.
		folded = text
	}
	return strings.ToLower(folded)
}

// Tokenize returns the maximal runs of letters (length >= MinTokenLength) in order of appearance.
// Digits, punctuation and whitespace act as separators and are discarded.
func Tokenize(text string) []string {
	folded := Fold(text)

	tokens := make([]string, 0, len(folded)/6)
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if word := folded[start:end]; len([]rune(word)) >= MinTokenLength {
			tokens = append(tokens, word)
		}
		start = -1
	}

	for i, r := range folded {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(folded))

	return tokens
}

// Terms tokenizes the text and drops every token found in stop.
func Terms(text string, stop StopWords) []string {
	tokens := Tokenize(text)
	if len(stop) == 0 {
		return tokens
	}

	kept := tokens[:0]
	for _, token := range tokens {
		if stop.Contains(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}
