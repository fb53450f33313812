package rational

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/matzehuels/shannonfano/pkg/errors"
)

// MaxDigits is the largest number of fractional decimal digits [FromFloat]
// accepts. A float64 holds 15 significant decimal digits faithfully.
const MaxDigits = 15

var pow10 = func() [MaxDigits + 1]int64 {
	var p [MaxDigits + 1]int64
	p[0] = 1
	for i := 1; i <= MaxDigits; i++ {
		p[i] = p[i-1] * 10
	}
	return p
}()

// Fraction is a rational number Num/Den in lowest terms with Den > 0.
// The zero value is not valid; construct fractions with [New], [FromFloat]
// or [Parse].
type Fraction struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// New returns num/den reduced to lowest terms with a positive denominator.
func New(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, errors.New(errors.ErrCodeInvalidInput, "fraction denominator cannot be zero")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := GCD(num, den); g > 1 {
		num, den = num/g, den/g
	}
	return Fraction{Num: num, Den: den}, nil
}

// FromFloat converts x to the fraction with the smallest power-of-ten
// denominator that represents it exactly, reduced by the GCD.
//
// The decimal expansion used is the shortest one that round-trips to x.
// FromFloat fails with a PRECISION error for NaN, infinities, values with
// more than [MaxDigits] fractional digits, and values whose numerator does
// not fit an int64.
func FromFloat(x float64) (Fraction, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Fraction{}, errors.New(errors.ErrCodePrecision, "%v has no decimal representation", x)
	}

	s := strconv.FormatFloat(x, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > MaxDigits {
		return Fraction{}, errors.New(errors.ErrCodePrecision,
			"%v has no terminating decimal within %d digits", x, MaxDigits)
	}

	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return Fraction{Num: 0, Den: 1}, nil
	}
	num, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Fraction{}, errors.Wrap(errors.ErrCodePrecision, err, "%v is too large for an exact fraction", x)
	}
	if neg {
		num = -num
	}
	return New(num, pow10[len(fracPart)])
}

// Parse reads a fraction written as "n/d" or as a decimal ("0.125", "3").
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if n, d, ok := strings.Cut(s, "/"); ok {
		num, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return Fraction{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid numerator %q", n)
		}
		den, err := strconv.ParseInt(strings.TrimSpace(d), 10, 64)
		if err != nil {
			return Fraction{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid denominator %q", d)
		}
		return New(num, den)
	}

	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Fraction{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", s)
	}
	return FromFloat(x)
}

// Compare converts a and b to fractions and compares them on their least
// common denominator. It returns -1, 0 or +1.
func Compare(a, b float64) (int, error) {
	fa, err := FromFloat(a)
	if err != nil {
		return 0, err
	}
	fb, err := FromFloat(b)
	if err != nil {
		return 0, err
	}
	return fa.Cmp(fb), nil
}

// Cmp compares f and g exactly and returns -1, 0 or +1.
// Both numerators are scaled to the least common denominator; the
// arithmetic is carried out in big integers, so it cannot overflow.
func (f Fraction) Cmp(g Fraction) int {
	fd, gd := f.den(), g.den()
	l := lcmBig(fd, gd)
	a := new(big.Int).Mul(big.NewInt(f.Num), new(big.Int).Quo(l, big.NewInt(fd)))
	b := new(big.Int).Mul(big.NewInt(g.Num), new(big.Int).Quo(l, big.NewInt(gd)))
	return a.Cmp(b)
}

// Equal reports whether f and g denote the same number.
func (f Fraction) Equal(g Fraction) bool {
	return f.Cmp(g) == 0
}

// Sign returns -1, 0 or +1 for negative, zero and positive fractions.
func (f Fraction) Sign() int {
	switch {
	case f.Num < 0:
		return -1
	case f.Num > 0:
		return 1
	}
	return 0
}

// Float64 returns the nearest float64 to f.
func (f Fraction) Float64() float64 {
	v, _ := new(big.Rat).SetFrac64(f.Num, f.den()).Float64()
	return v
}

// String formats f as "n/d", or "n" for integers.
func (f Fraction) String() string {
	if f.den() == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

func (f Fraction) den() int64 {
	if f.Den == 0 {
		return 1
	}
	return f.Den
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|, or 0 if either is 0.
// The result overflows for inputs whose LCM exceeds an int64; [Fraction.Cmp]
// uses a big-integer LCM instead.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}

func lcmBig(a, b int64) *big.Int {
	ba, bb := big.NewInt(a), big.NewInt(b)
	g := new(big.Int).GCD(nil, nil, ba, bb)
	return new(big.Int).Mul(new(big.Int).Quo(ba, g), bb)
}
