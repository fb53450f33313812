// Package observability provides hooks for metrics, tracing, and logging.
//
// Nothing in shannonfano depends on a metrics backend. Instead the pipeline,
// the cache layer and the API server emit events through the hook
// interfaces below, and a binary that wants Prometheus counters or traces
// registers its own implementation at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnComputeStart(ctx, "text", 0)
//	// ... compute codes ...
//	observability.Pipeline().OnComputeComplete(ctx, "text", len(codes), duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from code computation.
type PipelineHooks interface {
	// OnComputeStart fires before the input is validated. symbols is the
	// number of input symbols, or 0 for text input.
	OnComputeStart(ctx context.Context, source string, symbols int)

	// OnComputeComplete fires once per computation, including cache hits
	// and failures.
	OnComputeComplete(ctx context.Context, source string, codes int, duration time.Duration, err error)

	// OnDegenerate fires when a lenient computation clamps a split.
	OnDegenerate(ctx context.Context, prefix string, depth int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API server.
type ServerHooks interface {
	// OnRequest records an incoming request. route is the matched route
	// pattern, not the raw path.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComputeStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnDegenerate(context.Context, string, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                     {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds one registered hook implementation.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

func (s *slot[T]) reset() { s.v.Store(nil) }

var (
	pipelineHooks = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheHooks    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	serverHooks   = slot[ServerHooks]{noop: NoopServerHooks{}}
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetServerHooks registers server hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		serverHooks.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// Server returns the registered server hooks.
func Server() ServerHooks { return serverHooks.get() }

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	serverHooks.reset()
}
