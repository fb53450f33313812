// Package pipeline computes Fano codes with validation, metrics and caching.
//
// Both the CLI and the HTTP API go through a [Runner], so the two front
// ends validate, round and cache identically. A computation has two entry
// points, one per input source:
//
//  1. Symbols: an explicit alphabet of names and probabilities
//  2. Text: free text whose character frequencies form the alphabet
//
// Either way the runner validates the input, checks the cache, runs the
// partition engine, and attaches rounded metrics.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Codes(ctx, []alphabet.Symbol{
//	    {Name: "A", Probability: 0.5},
//	    {Name: "B", Probability: 0.25},
//	    {Name: "C", Probability: 0.25},
//	}, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Metrics.Entropy) // 1.5
//
// From text:
//
//	res, err := runner.Text(ctx, "ABBA", false, pipeline.Options{})
//	fmt.Println(res.Encoded)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shannonfano/pkg/cache"
	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPlaces is the number of decimal places metrics are rounded to.
	DefaultPlaces = metrics.DefaultPlaces

	// MaxPlaces is the largest rounding precision accepted. Doubles carry
	// no more meaningful decimal digits than this.
	MaxPlaces = 15

	// DefaultCacheTTL is how long computed results stay cached.
	DefaultCacheTTL = 24 * time.Hour
)

// Source names recorded in [Result].Source and cache keys.
const (
	SourceSymbols = "symbols"
	SourceText    = "text"
)

// =============================================================================
// Options - Computation Configuration
// =============================================================================

// Options configures a computation. The zero value is valid: sequential,
// strict, rounded to [DefaultPlaces], cached for [DefaultCacheTTL].
type Options struct {
	// Places rounds reported metrics; 0 means DefaultPlaces.
	Places int `json:"places,omitempty"`

	// Parallel evaluates large branches concurrently. The codes are the
	// same either way.
	Parallel   bool `json:"parallel,omitempty"`
	MaxWorkers int  `json:"max_workers,omitempty"`

	// Lenient clamps degenerate splits instead of failing.
	Lenient bool `json:"lenient,omitempty"`

	// Steps records every split in the result.
	Steps bool `json:"steps,omitempty"`

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults validates options and fills in defaults.
// Calling it more than once is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Places == 0 {
		o.Places = DefaultPlaces
	}
	if err := ValidatePlaces(o.Places); err != nil {
		return err
	}
	if o.MaxWorkers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_workers must not be negative, got %d", o.MaxWorkers)
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	o.validated = true
	return nil
}

// ValidatePlaces checks that places is within [0, MaxPlaces].
func ValidatePlaces(places int) error {
	if places < 0 || places > MaxPlaces {
		return errors.New(errors.ErrCodeInvalidInput, "places must be between 0 and %d, got %d", MaxPlaces, places)
	}
	return nil
}

// FanoOptions returns the engine options matching o.
func (o Options) FanoOptions() fano.Options {
	return fano.Options{
		Parallel:   o.Parallel,
		MaxWorkers: o.MaxWorkers,
		Lenient:    o.Lenient,
		Trace:      o.Steps,
	}
}

// CodesKeyOpts returns the cache key options matching o.
func (o Options) CodesKeyOpts() cache.CodesKeyOpts {
	return cache.CodesKeyOpts{
		Places:  o.Places,
		Lenient: o.Lenient,
		Steps:   o.Steps,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one computation.
type Result struct {
	// ID identifies this response. Cache hits get a fresh ID.
	ID uuid.UUID `json:"id"`

	// Source is SourceSymbols or SourceText.
	Source string `json:"source"`

	// Codes lists every symbol with non-zero probability in the order the
	// partition left them.
	Codes []fano.Coded `json:"codes"`

	// Metrics holds the rounded efficiency figures.
	Metrics metrics.Summary `json:"metrics"`

	// Encoded is the input text encoded with Codes (text source only).
	Encoded string `json:"encoded,omitempty"`

	// Steps lists every split when Options.Steps is set.
	Steps []fano.Split `json:"steps,omitempty"`

	Stats    Stats `json:"stats"`
	CacheHit bool  `json:"cache_hit"`
}

// Stats contains execution statistics.
type Stats struct {
	Duration time.Duration `json:"duration"`
	Symbols  int           `json:"symbols"`
}
