package pipeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/cache"
	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/observability"
)

func newTestRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func quarters() []alphabet.Symbol {
	return []alphabet.Symbol{{Name: "A", Probability: 0.5}, {Name: "B", Probability: 0.25}, {Name: "C", Probability: 0.25}}
}

func TestValidatePlaces(t *testing.T) {
	tests := []struct {
		places  int
		wantErr bool
	}{
		{0, false},
		{3, false},
		{MaxPlaces, false},
		{-1, true},
		{MaxPlaces + 1, true},
	}

	for _, tt := range tests {
		err := ValidatePlaces(tt.places)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePlaces(%d) error = %v, wantErr %v", tt.places, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.Places != DefaultPlaces {
		t.Errorf("Places = %d, want %d", o.Places, DefaultPlaces)
	}
	if o.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", o.CacheTTL, DefaultCacheTTL)
	}

	bad := Options{MaxWorkers: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative MaxWorkers error = %v, want INVALID_INPUT", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v, want defaults", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestRunnerCodes(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Codes(context.Background(), quarters(), Options{})
	if err != nil {
		t.Fatalf("Codes() error: %v", err)
	}

	want := map[string]string{"A": "1", "B": "00", "C": "01"}
	got := fano.Table(res.Codes)
	for name, code := range want {
		if got[name] != code {
			t.Errorf("code[%s] = %q, want %q", name, got[name], code)
		}
	}
	if res.Source != SourceSymbols {
		t.Errorf("Source = %q, want %q", res.Source, SourceSymbols)
	}
	if res.Metrics.Entropy != 1.5 || res.Metrics.AverageLength != 1.5 {
		t.Errorf("Metrics = %+v", res.Metrics)
	}
	if res.Encoded != "" {
		t.Errorf("Encoded = %q, want empty for symbol input", res.Encoded)
	}
	if res.CacheHit {
		t.Error("first computation should not be a cache hit")
	}
}

func TestRunnerValidation(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	_, err := r.Codes(ctx, []alphabet.Symbol{{Name: "A", Probability: 1.5}, {Name: "A", Probability: 0.1}}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidProbability) || !errors.Is(err, errors.ErrCodeDuplicateOrEmptyName) {
		t.Errorf("Codes() error = %v, want both INVALID_PROBABILITY and DUPLICATE_OR_EMPTY_NAME", err)
	}
	if !errors.IsValidation(err) {
		t.Error("validation failure should be IsValidation")
	}

	if _, err := r.Codes(ctx, quarters(), Options{Places: -2}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid places error = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerText(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Text(context.Background(), "ABBA", false, Options{})
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if res.Source != SourceText {
		t.Errorf("Source = %q, want %q", res.Source, SourceText)
	}
	if len(res.Codes) != 2 {
		t.Fatalf("Codes = %v, want 2 entries", res.Codes)
	}
	if want := fano.Encode("ABBA", res.Codes); res.Encoded != want {
		t.Errorf("Encoded = %q, want %q", res.Encoded, want)
	}
	if len(res.Encoded) != 4 {
		t.Errorf("Encoded length = %d, want 4", len(res.Encoded))
	}
}

func TestRunnerTextErrors(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	tests := []struct {
		text string
		gap  bool
		code errors.Code
	}{
		{"", false, errors.ErrCodeEmptyInput},
		{"   ", true, errors.ErrCodeEmptyInput},
		{"AB!", false, errors.ErrCodeInvalidCharacters},
		{"AAAA", false, errors.ErrCodeTooFewSymbols},
	}

	for _, tt := range tests {
		_, err := r.Text(ctx, tt.text, tt.gap, Options{})
		if !errors.Is(err, tt.code) {
			t.Errorf("Text(%q) error = %v, want %s", tt.text, err, tt.code)
		}
	}
}

func TestRunnerCaching(t *testing.T) {
	r := newTestRunner(cache.NewMemoryCache())
	ctx := context.Background()

	first, err := r.Codes(ctx, quarters(), Options{})
	if err != nil {
		t.Fatalf("Codes() error: %v", err)
	}
	second, err := r.Codes(ctx, quarters(), Options{})
	if err != nil {
		t.Fatalf("Codes() error: %v", err)
	}

	if !second.CacheHit {
		t.Error("second computation should be a cache hit")
	}
	if first.ID == second.ID {
		t.Error("cache hits should get a fresh ID")
	}
	if fano.Table(first.Codes)["B"] != fano.Table(second.Codes)["B"] {
		t.Error("cached codes differ from computed codes")
	}
	if second.Metrics != first.Metrics {
		t.Errorf("cached metrics = %+v, want %+v", second.Metrics, first.Metrics)
	}

	// Options that change the output use a different key.
	third, _ := r.Codes(ctx, quarters(), Options{Places: 1})
	if third.CacheHit {
		t.Error("different places should not hit the cache")
	}

	// Refresh bypasses the lookup.
	fourth, _ := r.Codes(ctx, quarters(), Options{Refresh: true})
	if fourth.CacheHit {
		t.Error("Refresh should not hit the cache")
	}
}

// emptyKeyer reports every input as unkeyable.
type emptyKeyer struct{}

func (emptyKeyer) CodesKey(string, any, cache.CodesKeyOpts) string { return "" }

// countingCache records writes to an in-memory cache.
type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestRunnerSkipsCacheWithoutKey(t *testing.T) {
	c := &countingCache{Cache: cache.NewMemoryCache()}
	r := NewRunner(c, emptyKeyer{}, log.New(io.Discard))
	ctx := context.Background()

	for i := range 2 {
		res, err := r.Codes(ctx, quarters(), Options{})
		if err != nil {
			t.Fatalf("Codes() error: %v", err)
		}
		if res.CacheHit {
			t.Errorf("call %d: unkeyable input should never hit the cache", i)
		}
	}
	if c.sets != 0 {
		t.Errorf("cache received %d writes, want 0", c.sets)
	}
}

func TestRunnerSteps(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Codes(context.Background(), quarters(), Options{Steps: true})
	if err != nil {
		t.Fatalf("Codes() error: %v", err)
	}
	if len(res.Steps) != 2 {
		t.Fatalf("Steps = %d, want 2", len(res.Steps))
	}
	if res.Steps[0].Prefix != "" || res.Steps[1].Prefix != "0" {
		t.Errorf("Steps prefixes = %q, %q", res.Steps[0].Prefix, res.Steps[1].Prefix)
	}
}

func TestRunnerDegenerate(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()
	symbols := []alphabet.Symbol{{Name: "A", Probability: 1.0}, {Name: "B", Probability: 1e-17}, {Name: "C", Probability: 1e-17}}

	if _, err := r.Codes(ctx, symbols, Options{}); !errors.Is(err, errors.ErrCodePartitionDegenerate) {
		t.Errorf("strict error = %v, want PARTITION_DEGENERATE", err)
	}

	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	res, err := r.Codes(ctx, symbols, Options{Lenient: true})
	if err != nil {
		t.Fatalf("lenient error: %v", err)
	}
	if !res.Metrics.PrefixFree {
		t.Error("lenient codes should be prefix-free")
	}
	if hooks.degenerate == 0 {
		t.Error("OnDegenerate hook not called")
	}
}

func TestRunnerParallelMatchesSequential(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()
	text := "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG"

	seq, err := r.Text(ctx, text, true, Options{})
	if err != nil {
		t.Fatalf("sequential error: %v", err)
	}
	par, err := r.Text(ctx, text, true, Options{Parallel: true, MaxWorkers: 4})
	if err != nil {
		t.Fatalf("parallel error: %v", err)
	}
	if seq.Encoded != par.Encoded {
		t.Error("parallel encoding differs from sequential")
	}
}

func TestRunnerHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(nil)
	_, _ = r.Codes(context.Background(), quarters(), Options{})
	_, _ = r.Text(context.Background(), "", false, Options{})

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.started != 2 || hooks.completed != 2 {
		t.Errorf("started %d, completed %d; want 2, 2", hooks.started, hooks.completed)
	}
	if hooks.failed != 1 {
		t.Errorf("failed = %d, want 1", hooks.failed)
	}
}

type countingHooks struct {
	mu                                     sync.Mutex
	started, completed, failed, degenerate int
}

func (h *countingHooks) OnComputeStart(context.Context, string, int) {
	h.mu.Lock()
	h.started++
	h.mu.Unlock()
}

func (h *countingHooks) OnComputeComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	h.completed++
	if err != nil {
		h.failed++
	}
	h.mu.Unlock()
}

func (h *countingHooks) OnDegenerate(context.Context, string, int) {
	h.mu.Lock()
	h.degenerate++
	h.mu.Unlock()
}
