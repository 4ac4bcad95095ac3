// Package strcase converts Go identifiers into the snake_case names used on
// the wire.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts an identifier such as "TaskName" or "userID" to
// snake_case. Runs of capitals are kept together ("HTTPServer" becomes
// "http_server").
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordBoundary(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// wordBoundary reports whether the upper case rune at i starts a new word.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// acronym followed by a word: the last capital belongs to the word
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
