// Package alphabet defines weighted symbols and the invariants an alphabet
// must satisfy before it reaches the Fano partitioner.
//
// # Weighted Values
//
// Anything with a name and a probability can be coded. The [Weighted]
// interface captures that capability and is implemented by [Symbol] (typed
// by a user), frequency.Entry (derived from text) and fano.Coded (a symbol
// with its code). Types that know their probability exactly, such as a
// count over a total, also implement [Exact].
//
// # Validation
//
// [Validate] checks a candidate alphabet and reports every problem at once,
// joined with errors.Join, so a front end can show all of them in one
// prompt:
//
//   - names must be non-blank and unique (DUPLICATE_OR_EMPTY_NAME)
//   - probabilities must lie in [0, 1] (INVALID_PROBABILITY)
//   - probabilities must sum to 1 within [SumTolerance] (PROBABILITY_SUM_MISMATCH)
//
// Symbols with probability exactly 0 are valid. [Codable] drops them before
// partitioning, so they never receive a code. [Prepare] runs both steps and
// additionally requires [MinSymbols] codable symbols (TOO_FEW_SYMBOLS).
package alphabet
