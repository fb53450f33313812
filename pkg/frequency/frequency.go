// Package frequency derives a probability distribution from free text.
//
// Characters are counted case-insensitively (each rune is upper-cased) and
// every distinct character becomes one [Entry] whose probability is its
// count over the number of counted characters. The space character is
// counted only when considerGap is true.
//
//	entries, err := frequency.Analyze("AAB", false)
//	// A: 2/3, B: 1/3
//
// Entries implement alphabet.Weighted and alphabet.Exact, so they feed the
// same validation and partitioning pipeline as manually entered symbols.
package frequency

import (
	"unicode"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/rational"
)

// Gap is the character excluded from counting when considerGap is false.
const Gap = ' '

// Entry is the count of one character in a text.
type Entry struct {
	Char  rune `json:"char"`
	Count int  `json:"count"`
	Total int  `json:"total"`
}

// SymbolName implements alphabet.Weighted.
func (e Entry) SymbolName() string { return string(e.Char) }

// Weight implements alphabet.Weighted.
func (e Entry) Weight() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Count) / float64(e.Total)
}

// Fraction implements alphabet.Exact.
func (e Entry) Fraction() (rational.Fraction, error) {
	return rational.New(int64(e.Count), int64(e.Total))
}

// Analyze validates text and counts its characters.
// Entries are returned in order of first appearance.
//
// Analyze fails with EMPTY_INPUT for blank text or text with nothing left
// to count, and with INVALID_CHARACTERS for anything other than Latin or
// Cyrillic letters, digits and spaces.
func Analyze(text string, considerGap bool) ([]Entry, error) {
	if err := errors.ValidateText(text); err != nil {
		return nil, err
	}

	var order []rune
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		r = unicode.ToUpper(r)
		if r == Gap && !considerGap {
			continue
		}
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
		total++
	}
	if total == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "text has no characters to count")
	}

	entries := make([]Entry, len(order))
	for i, r := range order {
		entries[i] = Entry{Char: r, Count: counts[r], Total: total}
	}
	return entries, nil
}

// Symbols converts entries to plain symbols.
func Symbols(entries []Entry) []alphabet.Symbol {
	return alphabet.Symbols(entries)
}
