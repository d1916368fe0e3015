// Package observability lets callers watch grid passes, settings reads,
// cache lookups and API requests without the libraries depending on a
// metrics or tracing backend.
//
// Each event category has an interface and a no-op default. Install
// implementations once at startup:
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, len(tiles), columns)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from grid passes and rendering.
type PipelineHooks interface {
	// columns is the effective column count.
	OnLayoutStart(ctx context.Context, tileCount, columns int)
	OnLayoutComplete(ctx context.Context, columns, rows int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// SettingsHooks receives events from the settings provider.
type SettingsHooks interface {
	OnSettingsRead(ctx context.Context, duration time.Duration, err error)

	// OnSettingsChange fires on a configuration-changed signal. key is
	// empty when the whole store was reloaded.
	OnSettingsChange(ctx context.Context, key string)
}

// CacheHooks receives events from cache lookups and writes. key is the
// full cache key; its first segment names the entry kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopSettingsHooks ignores every event.
type NoopSettingsHooks struct{}

func (NoopSettingsHooks) OnSettingsRead(context.Context, time.Duration, error) {}
func (NoopSettingsHooks) OnSettingsChange(context.Context, string)             {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// hookSet is swapped as a whole so readers never see a half-updated set.
type hookSet struct {
	pipeline PipelineHooks
	settings SettingsHooks
	cache    CacheHooks
	http     HTTPHooks
}

func noopSet() *hookSet {
	return &hookSet{
		pipeline: NoopPipelineHooks{},
		settings: NoopSettingsHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

var current atomic.Pointer[hookSet]

func init() { current.Store(noopSet()) }

// update applies fn to a copy of the current set and publishes it.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetSettingsHooks installs h. A nil h is ignored.
func SetSettingsHooks(h SettingsHooks) {
	if h != nil {
		update(func(s *hookSet) { s.settings = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Register installs h for every hook interface it implements, in one
// step. It reports whether h implemented any of them.
func Register(h any) bool {
	matched := false
	update(func(s *hookSet) {
		if p, ok := h.(PipelineHooks); ok {
			s.pipeline, matched = p, true
		}
		if st, ok := h.(SettingsHooks); ok {
			s.settings, matched = st, true
		}
		if c, ok := h.(CacheHooks); ok {
			s.cache, matched = c, true
		}
		if x, ok := h.(HTTPHooks); ok {
			s.http, matched = x, true
		}
	})
	return matched
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Settings() SettingsHooks { return current.Load().settings }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() { current.Store(noopSet()) }
