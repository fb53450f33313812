// Package metrics computes coding-efficiency figures for a set of codes.
//
// The entropy H of a distribution is the lower bound on the average code
// length L of any prefix code for it. Fano codes get close to H; the
// [Efficiency] H/L and [Redundancy] L−H measure how close.
//
// Every figure that leaves this package through [Summarize] is passed
// through [Round], which maps NaN and infinities to 0. Degenerate inputs
// (an empty code list, all-zero probabilities) therefore report zeros
// rather than NaN.
package metrics

import (
	"math"
	"math/big"
	"strconv"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/fano"
)

// DefaultPlaces is the number of decimal places used for reporting.
const DefaultPlaces = 3

// Entropy returns −Σ p·log2(p) over the items with p > 0, in bits.
func Entropy[W alphabet.Weighted](items []W) float64 {
	var h float64
	for _, it := range items {
		if p := it.Weight(); p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// AverageCodeLength returns the probability-weighted mean code length
// Σ p·len(code), in bits.
func AverageCodeLength(codes []fano.Coded) float64 {
	var l float64
	for _, c := range codes {
		l += c.Probability * float64(c.Len())
	}
	return l
}

// Kraft returns Σ 2^−len(code). Any prefix code has a Kraft sum of at most 1.
func Kraft(codes []fano.Coded) float64 {
	var k float64
	for _, c := range codes {
		k += math.Ldexp(1, -c.Len())
	}
	return k
}

// Efficiency returns entropy / averageLength. It is NaN when averageLength
// is 0.
func Efficiency(entropy, averageLength float64) float64 {
	if averageLength == 0 {
		return math.NaN()
	}
	return entropy / averageLength
}

// Redundancy returns averageLength − entropy.
func Redundancy(entropy, averageLength float64) float64 {
	return averageLength - entropy
}

// Round rounds v to places decimal digits, halves away from zero.
//
// Rounding works on the shortest decimal representation of v, so values
// like 1.005, stored as 1.00499999999999989..., round to 1.01 as written.
// NaN and ±Inf are treated as 0. Negative places are treated as 0.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if places < 0 {
		places = 0
	}

	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		return 0
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(scale))

	// Truncate toward zero, then bump the magnitude if the remainder is at
	// least one half.
	q, m := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	m.Abs(m).Lsh(m, 1)
	if m.Cmp(scaled.Denom()) >= 0 {
		if scaled.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}

	out, _ := new(big.Rat).SetFrac(q, scale).Float64()
	return out
}

// Summary bundles the rounded metrics of a code set.
type Summary struct {
	Entropy       float64 `json:"entropy"`
	AverageLength float64 `json:"average_length"`
	Efficiency    float64 `json:"efficiency"`
	Redundancy    float64 `json:"redundancy"`
	Kraft         float64 `json:"kraft"`
	MaxLength     int     `json:"max_length"`
	PrefixFree    bool    `json:"prefix_free"`
}

// Summarize computes every metric for codes and rounds it to places.
func Summarize(codes []fano.Coded, places int) Summary {
	h := Entropy(codes)
	l := AverageCodeLength(codes)

	maxLen := 0
	for _, c := range codes {
		maxLen = max(maxLen, c.Len())
	}

	return Summary{
		Entropy:       Round(h, places),
		AverageLength: Round(l, places),
		Efficiency:    Round(Efficiency(h, l), places),
		Redundancy:    Round(Redundancy(h, l), places),
		Kraft:         Round(Kraft(codes), places),
		MaxLength:     maxLen,
		PrefixFree:    fano.IsPrefixFree(codes),
	}
}
