package errors

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxNameLength bounds symbol names accepted from files and HTTP requests.
const MaxNameLength = 64

// ValidateSymbolName validates a single symbol name.
//
// Uniqueness is checked at the alphabet level. Rules:
//   - No empty or whitespace-only names, except the single space that
//     names the gap symbol of text analysis
//   - No control characters
//   - Maximum length of [MaxNameLength] runes
func ValidateSymbolName(name string) error {
	if name != " " && strings.TrimSpace(name) == "" {
		return New(ErrCodeDuplicateOrEmptyName, "symbol name cannot be empty")
	}

	if n := len([]rune(name)); n > MaxNameLength {
		return New(ErrCodeInvalidInput, "symbol name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "symbol name contains invalid control characters")
		}
	}

	return nil
}

// IsTextRune reports whether r may appear in text submitted for frequency
// analysis: Latin or Cyrillic letters, ASCII digits, and the space character.
func IsTextRune(r rune) bool {
	switch {
	case r == ' ':
		return true
	case r >= '0' && r <= '9':
		return true
	case unicode.IsLetter(r) && unicode.In(r, unicode.Latin, unicode.Cyrillic):
		return true
	}
	return false
}

// ValidateText validates free text before frequency analysis.
//
// Validation rules:
//   - Text cannot be blank
//   - Only Latin/Cyrillic letters, digits and spaces are allowed
//
// The error message lists each offending character once, in order of
// first appearance.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeEmptyInput, "text cannot be empty")
	}

	var bad []string
	seen := make(map[rune]bool)
	for _, r := range text {
		if IsTextRune(r) || seen[r] {
			continue
		}
		seen[r] = true
		bad = append(bad, quoteRune(r))
	}
	if len(bad) > 0 {
		return New(ErrCodeInvalidCharacters, "text contains unsupported characters: %s", strings.Join(bad, ", "))
	}
	return nil
}

func quoteRune(r rune) string {
	if unicode.IsPrint(r) {
		return fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("%U", r)
}
