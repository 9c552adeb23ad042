package matcher

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text and splits it into word tokens.
// Any rune that is not a letter, digit or whitespace acts as a separator,
// so "Node.js, React!" yields ["node", "js", "react"]. Order and duplicates
// are preserved.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	return strings.Fields(normalized)
}

// isWordRune reports whether r can be part of a token.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenSet returns the distinct tokens of text.
func tokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
