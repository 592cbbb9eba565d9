package locale

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
)

// capitalizeFirst upper-cases the first rune of s.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// capitalizeWords upper-cases the first rune of every space-separated word.
func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

// pickSentences builds count sentences of wordCount words drawn from words.
func pickSentences(f *gofakeit.Faker, words []string, count, wordCount int, wordSep, end, sentenceSep string) string {
	sentences := make([]string, count)
	for i := range sentences {
		parts := make([]string, wordCount)
		for j := range parts {
			parts[j] = f.RandomString(words)
		}
		sentences[i] = capitalizeFirst(strings.Join(parts, wordSep)) + end
	}
	return strings.Join(sentences, sentenceSep)
}
