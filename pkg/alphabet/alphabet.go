package alphabet

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/rational"
)

const (
	// SumTolerance is the accepted absolute deviation of the probability
	// sum from 1. User-entered decimals rarely sum to exactly 1.
	SumTolerance = 0.005

	// MinSymbols is the smallest number of non-zero symbols that can be coded.
	MinSymbols = 2
)

// Weighted is a named value with a probability used for partitioning.
type Weighted interface {
	SymbolName() string
	Weight() float64
}

// Exact is implemented by weighted values that know their probability as
// an exact fraction.
type Exact interface {
	Fraction() (rational.Fraction, error)
}

// Symbol is a named probability entered by a user or read from a file.
type Symbol struct {
	Name        string  `json:"name" toml:"name"`
	Probability float64 `json:"probability" toml:"probability"`
}

// SymbolName implements [Weighted].
func (s Symbol) SymbolName() string { return s.Name }

// Weight implements [Weighted].
func (s Symbol) Weight() float64 { return s.Probability }

// Fraction implements [Exact] through the shortest decimal of the probability.
func (s Symbol) Fraction() (rational.Fraction, error) { return rational.FromFloat(s.Probability) }

var one = rational.Fraction{Num: 1, Den: 1}

func fractionOf(w Weighted) (rational.Fraction, error) {
	if e, ok := w.(Exact); ok {
		return e.Fraction()
	}
	return rational.FromFloat(w.Weight())
}

// CompareWeights compares the probabilities of a and b exactly.
// It fails with a PRECISION error if either has no exact fraction.
func CompareWeights(a, b Weighted) (int, error) {
	fa, err := fractionOf(a)
	if err != nil {
		return 0, err
	}
	fb, err := fractionOf(b)
	if err != nil {
		return 0, err
	}
	return fa.Cmp(fb), nil
}

// inUnitInterval decides 0 <= p <= 1 exactly when a fraction exists and
// falls back to float comparison for non-terminating decimals.
func inUnitInterval(w Weighted) bool {
	p := w.Weight()
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	if f, err := fractionOf(w); err == nil {
		return f.Sign() >= 0 && f.Cmp(one) <= 0
	}
	return p >= 0 && p <= 1
}

// Sum returns the total probability of items.
func Sum[W Weighted](items []W) float64 {
	var total float64
	for _, it := range items {
		total += it.Weight()
	}
	return total
}

// Validate checks names, probability bounds and the probability sum of
// items. All issues are reported, joined into one error.
func Validate[W Weighted](items []W) error {
	if len(items) == 0 {
		return errors.New(errors.ErrCodeTooFewSymbols, "alphabet is empty")
	}

	var errs []error
	seen := make(map[string]int, len(items))
	var total float64
	validSum := true

	for i, it := range items {
		name := it.SymbolName()
		if err := errors.ValidateSymbolName(name); err != nil {
			errs = append(errs, errors.New(errors.GetCode(err), "symbol %d (%q): %s", i, name, errors.UserMessage(err)))
		} else if first, dup := seen[name]; dup {
			errs = append(errs, errors.New(errors.ErrCodeDuplicateOrEmptyName,
				"symbol %d: duplicate name %q (first used by symbol %d)", i, name, first))
		} else {
			seen[name] = i
		}

		if !inUnitInterval(it) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidProbability,
				"symbol %d (%q): probability %v is outside [0, 1]", i, name, it.Weight()))
			validSum = validSum && !math.IsNaN(it.Weight()) && !math.IsInf(it.Weight(), 0)
		}
		total += it.Weight()
	}

	if validSum && math.Abs(total-1) > SumTolerance {
		errs = append(errs, errors.New(errors.ErrCodeProbabilitySumMismatch,
			"probabilities sum to %s, want 1 ± %v", strconv.FormatFloat(total, 'g', 6, 64), SumTolerance))
	}

	return errors.Join(errs...)
}

// Codable returns the items with a non-zero probability, in input order.
func Codable[W Weighted](items []W) []W {
	out := make([]W, 0, len(items))
	for _, it := range items {
		if it.Weight() != 0 {
			out = append(out, it)
		}
	}
	return out
}

// Prepare validates items and returns the codable subset. It fails with
// TOO_FEW_SYMBOLS if fewer than [MinSymbols] symbols have non-zero
// probability.
func Prepare[W Weighted](items []W) ([]W, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	codable := Codable(items)
	if len(codable) < MinSymbols {
		return nil, errors.New(errors.ErrCodeTooFewSymbols,
			"need at least %d symbols with non-zero probability, got %d", MinSymbols, len(codable))
	}
	return codable, nil
}

// Symbols converts weighted values to plain symbols.
func Symbols[W Weighted](items []W) []Symbol {
	out := make([]Symbol, len(items))
	for i, it := range items {
		out[i] = Symbol{Name: it.SymbolName(), Probability: it.Weight()}
	}
	return out
}

// SortByProbability orders items by descending probability, then by name.
// Probabilities are compared exactly where possible.
func SortByProbability[W Weighted](items []W) {
	slices.SortStableFunc(items, func(a, b W) int {
		c, err := CompareWeights(b, a)
		if err != nil {
			c = cmp.Compare(b.Weight(), a.Weight())
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.SymbolName(), b.SymbolName())
	})
}

// Parse reads a symbol written as NAME=PROB, where PROB is a decimal
// ("0.25") or a fraction ("1/4"). The last '=' separates name and
// probability.
func Parse(s string) (Symbol, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return Symbol{}, errors.New(errors.ErrCodeInvalidInput, "symbol %q: want NAME=PROBABILITY", s)
	}
	name, value := s[:i], strings.TrimSpace(s[i+1:])
	if name != " " {
		name = strings.TrimSpace(name)
	}

	var p float64
	if strings.Contains(value, "/") {
		f, err := rational.Parse(value)
		if err != nil {
			return Symbol{}, errors.Wrap(errors.ErrCodeInvalidProbability, err, "symbol %q", s)
		}
		p = f.Float64()
	} else {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Symbol{}, errors.Wrap(errors.ErrCodeInvalidProbability, err, "symbol %q", s)
		}
		p = v
	}
	return Symbol{Name: name, Probability: p}, nil
}

// ParseAll parses every argument with [Parse], stopping at the first error.
func ParseAll(args []string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(args))
	for _, a := range args {
		s, err := Parse(a)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
