package fano

import (
	"strings"
	"unicode"
)

// Encode concatenates the codes of the characters of text in order.
// Each character is upper-cased before lookup; characters without a code
// (punctuation, an excluded gap, letters outside the alphabet) are dropped.
func Encode(text string, codes []Coded) string {
	table := Table(codes)

	var b strings.Builder
	for _, r := range text {
		if code, ok := table[string(unicode.ToUpper(r))]; ok {
			b.WriteString(code)
		}
	}
	return b.String()
}
