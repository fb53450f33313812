package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/cache"
	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/frequency"
	"github.com/matzehuels/shannonfano/pkg/metrics"
	"github.com/matzehuels/shannonfano/pkg/observability"
)

// Runner computes codes with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Codes computes the Fano codes of an explicit alphabet.
//
// Validation issues are all reported together, joined, before any
// partitioning happens. Symbols with zero probability are accepted but
// receive no code.
func (r *Runner) Codes(ctx context.Context, symbols []alphabet.Symbol, opts Options) (*Result, error) {
	return r.run(ctx, SourceSymbols, len(symbols), symbols, opts, func(fo fano.Options) (*Result, error) {
		fr, err := fano.Build(ctx, symbols, fo)
		if err != nil {
			return nil, err
		}
		return &Result{Codes: fr.Codes, Steps: fr.Steps}, nil
	})
}

// Text computes the Fano codes of the characters of text, weighted by
// their frequency. Letters are upper-cased; spaces count only when
// considerGap is set. The result carries text encoded with the codes.
func (r *Runner) Text(ctx context.Context, text string, considerGap bool, opts Options) (*Result, error) {
	input := struct {
		Text        string `json:"text"`
		ConsiderGap bool   `json:"consider_gap"`
	}{text, considerGap}

	return r.run(ctx, SourceText, 0, input, opts, func(fo fano.Options) (*Result, error) {
		entries, err := frequency.Analyze(text, considerGap)
		if err != nil {
			return nil, err
		}
		fr, err := fano.Build(ctx, entries, fo)
		if err != nil {
			return nil, err
		}
		return &Result{
			Codes:   fr.Codes,
			Steps:   fr.Steps,
			Encoded: fano.Encode(text, fr.Codes),
		}, nil
	})
}

func (r *Runner) run(ctx context.Context, source string, symbols int, input any, opts Options,
	compute func(fano.Options) (*Result, error)) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, source, symbols)
	defer func() {
		n := 0
		if res != nil {
			n = len(res.Codes)
		}
		hooks.OnComputeComplete(ctx, source, n, time.Since(start), err)
	}()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	key := r.Keyer.CodesKey(source, input, opts.CodesKeyOpts())
	if key == "" {
		logger.Debug("input cannot be keyed, skipping cache", "source", source)
	}

	if !opts.Refresh && key != "" {
		if cached, ok := r.lookup(ctx, key); ok {
			cached.finish(source, start, true)
			logger.Debug("served codes from cache", "source", source, "symbols", len(cached.Codes))
			return cached, nil
		}
	}

	fo := opts.FanoOptions()
	if opts.Lenient {
		fo.OnDegenerate = func(s fano.Split) {
			logger.Warn("clamped degenerate split", "prefix", s.Prefix, "depth", s.Depth)
			hooks.OnDegenerate(ctx, s.Prefix, s.Depth)
		}
	}

	res, err = compute(fo)
	if err != nil {
		return nil, err
	}
	res.Metrics = metrics.Summarize(res.Codes, opts.Places)
	if key != "" {
		r.store(ctx, key, res, opts.CacheTTL)
	}
	res.finish(source, start, false)

	logger.Info("computed codes",
		"source", source,
		"symbols", len(res.Codes),
		"entropy", res.Metrics.Entropy,
		"average_length", res.Metrics.AverageLength,
		"duration", res.Stats.Duration)
	return res, nil
}

func (res *Result) finish(source string, start time.Time, hit bool) {
	res.ID = uuid.New()
	res.Source = source
	res.CacheHit = hit
	res.Stats = Stats{Duration: time.Since(start), Symbols: len(res.Codes)}
}

// lookup returns the cached result for key. Backend and decode failures
// count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "codes")
		return nil, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "codes")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "codes")
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "codes", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
