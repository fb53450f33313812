package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line to Logger. It implements
// [PipelineHooks], [CacheHooks] and [ServerHooks].
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) LogHooks {
	return LogHooks{Logger: l}
}

func (h LogHooks) OnComputeStart(_ context.Context, source string, symbols int) {
	h.Logger.Debug("compute start", "source", source, "symbols", symbols)
}

func (h LogHooks) OnComputeComplete(_ context.Context, source string, codes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("compute failed", "source", source, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("compute done", "source", source, "codes", codes, "duration", d)
}

func (h LogHooks) OnDegenerate(_ context.Context, prefix string, depth int) {
	h.Logger.Debug("degenerate split", "prefix", prefix, "depth", depth)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ ServerHooks   = LogHooks{}
)
