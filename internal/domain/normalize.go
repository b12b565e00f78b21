package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses whitespace runs into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return CollapseSpaces(strings.ToLower(text))
}

// termPunctuation lists the characters CleanTerm strips from a selection.
const termPunctuation = `.,!?;:'"/\()[]{}`

// CleanTerm strips selection punctuation anywhere in the term and trims
// surrounding whitespace. Case is preserved.
func CleanTerm(term string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(termPunctuation, r) {
			return -1
		}
		return r
	}, term)
	return strings.TrimSpace(cleaned)
}

// CollapseSpaces replaces every whitespace run with a single space and trims the ends.
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StripPunctuation removes every Unicode punctuation rune.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, text)
}

// Capitalize upper-cases the first rune and lower-cases the rest ("white Rabbit" -> "White rabbit").
func Capitalize(text string) string {
	if text == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + strings.ToLower(text[size:])
}

// TitleCase capitalizes every space-separated word ("white RABBIT" -> "White Rabbit").
func TitleCase(text string) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}
