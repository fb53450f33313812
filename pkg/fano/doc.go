// Package fano builds Shannon–Fano prefix codes.
//
// # Algorithm
//
// Fano coding is a top-down heuristic: sort the alphabet by probability,
// split it into two groups whose totals are as close to half as a greedy
// walk can get, give one group a 1 and the other a 0, and recurse on each
// group. Every level extends each participating code by exactly one bit,
// and since groups are disjoint no code can be a prefix of another.
//
// For a working set of n symbols:
//
//   - n = 1: nothing to do; the symbol keeps the bits of its ancestors.
//   - n = 2: sort ascending (stable); the lower probability gets 0, the
//     higher gets 1.
//   - n ≥ 3: sort descending (stable). With total T and
//     distance(x) = |2x − T|, walk from the most probable symbol adding
//     probabilities while the distance strictly decreases. The consumed
//     prefix is the high group (bit 1), the rest the low group (bit 0).
//
// Unlike Huffman coding the result is not guaranteed optimal, but it is
// close for most distributions.
//
// # Degenerate Splits
//
// The walk always consumes between 1 and n−1 symbols for exact arithmetic.
// With floating point a dominant probability can swallow the rest of the
// sum (1.0 + 1e-17 == 1.0), leaving one group empty. [Assign] reports this
// as PARTITION_DEGENERATE; with [Options].Lenient it clamps the split into
// [1, n−1] instead and reports the clamp through [Options].OnDegenerate.
//
// # Concurrency
//
// Groups are contiguous, disjoint sub-slices of one array, so the two
// branches of a split share nothing. With [Options].Parallel, large high
// groups run on their own goroutine while the low group runs inline. The
// result is identical to sequential evaluation, including which error is
// returned when both branches fail.
//
// # Output Order
//
// Codes are returned in the final arrangement of the working array: at
// every level the high group precedes the low group, and pairs are in
// ascending probability order.
//
//	res, _ := fano.Build(ctx, []alphabet.Symbol{{"A", 0.5}, {"B", 0.25}, {"C", 0.25}}, fano.Options{})
//	// A=1, B=00, C=01
package fano
