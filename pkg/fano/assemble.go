package fano

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
)

// Coded is a symbol with its assigned code, a string of '0' and '1'.
type Coded struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Code        string  `json:"code"`
}

// SymbolName implements alphabet.Weighted.
func (c Coded) SymbolName() string { return c.Name }

// Weight implements alphabet.Weighted.
func (c Coded) Weight() float64 { return c.Probability }

// Len returns the code length in bits.
func (c Coded) Len() int { return len(c.Code) }

// Build validates items, drops zero-probability symbols and assigns codes
// to the rest. Validation errors are returned before any partitioning.
func Build[W alphabet.Weighted](ctx context.Context, items []W, opts Options) (*Result, error) {
	codable, err := alphabet.Prepare(items)
	if err != nil {
		return nil, err
	}
	return Assign(ctx, codable, opts)
}

// Table maps each symbol name to its code.
func Table(codes []Coded) map[string]string {
	t := make(map[string]string, len(codes))
	for _, c := range codes {
		t[c.Name] = c.Code
	}
	return t
}

// IsPrefixFree reports whether no code is a prefix of, or equal to,
// another code.
func IsPrefixFree(codes []Coded) bool {
	sorted := make([]string, len(codes))
	for i, c := range codes {
		sorted[i] = c.Code
	}
	slices.Sort(sorted)

	// After sorting, a code that prefixes any other prefixes its successor.
	for i := 1; i < len(sorted); i++ {
		if strings.HasPrefix(sorted[i], sorted[i-1]) {
			return false
		}
	}
	return true
}
