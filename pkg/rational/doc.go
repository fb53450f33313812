// Package rational provides exact fractions for comparing decimal
// probabilities without binary floating-point drift.
//
// # Overview
//
// A probability typed by a user as 0.1 is stored as the nearest binary
// float, and arithmetic on such values accumulates error: 0.1+0.2 is not
// 0.3. Where the engine must decide equality or ordering exactly (range
// checks, display ordering), it converts floats to [Fraction] values first:
//
//	f, err := rational.FromFloat(0.125) // 1/8
//	c, err := rational.Compare(0.1, 0.1) // 0
//
// [FromFloat] works on the shortest decimal that round-trips to the float,
// so 0.1 becomes 1/10 rather than 3602879701896397/36028797018963968.
// Values needing more than [MaxDigits] fractional digits (1/3, 2/3) have no
// terminating decimal within the cap and fail with a PRECISION error.
//
// # Not in the Hot Path
//
// Fractions are used for comparison only. The partition walk in package
// fano works on the float probabilities directly; it needs a consistent
// relative ordering, not exact equality, and fraction arithmetic at every
// step would dominate the run time.
package rational
