package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Nothing to assert beyond "does not panic" for the no-op set.
	Pipeline().OnLayoutStart(ctx, 9, 4)
	Pipeline().OnLayoutComplete(ctx, 4, 3, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	Settings().OnSettingsRead(ctx, time.Millisecond, nil)
	Settings().OnSettingsChange(ctx, "quick_tiles_per_row")
	Cache().OnCacheHit(ctx, "layout:ab")
	Cache().OnCacheMiss(ctx, "layout:ab")
	Cache().OnCacheSet(ctx, "artifact:cd", 1024)
	HTTP().OnRequest(ctx, "POST", "/v1/layout")
	HTTP().OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
}

func TestSetters(t *testing.T) {
	tests := []struct {
		name  string
		set   func()
		check func() bool
	}{
		{
			name:  "pipeline",
			set:   func() { SetPipelineHooks(&countingHooks{}) },
			check: func() bool { _, ok := Pipeline().(*countingHooks); return ok },
		},
		{
			name:  "settings",
			set:   func() { SetSettingsHooks(&countingHooks{}) },
			check: func() bool { _, ok := Settings().(*countingHooks); return ok },
		},
		{
			name:  "cache",
			set:   func() { SetCacheHooks(&countingHooks{}) },
			check: func() bool { _, ok := Cache().(*countingHooks); return ok },
		},
		{
			name:  "http",
			set:   func() { SetHTTPHooks(&countingHooks{}) },
			check: func() bool { _, ok := HTTP().(*countingHooks); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			defer Reset()
			tt.set()
			if !tt.check() {
				t.Error("hooks not installed")
			}
		})
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	h := &countingHooks{}
	SetPipelineHooks(h)
	SetPipelineHooks(nil)
	if Pipeline() != h {
		t.Error("SetPipelineHooks(nil) replaced installed hooks")
	}
}

func TestResetRestoresNoop(t *testing.T) {
	Register(&countingHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T after Reset", Pipeline())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T after Reset", HTTP())
	}
}

func TestRegisterConcurrentWithReads(t *testing.T) {
	Reset()
	defer Reset()

	h := &countingHooks{}
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register(h)
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(ctx, "layout:ab")
		}()
	}
	wg.Wait()

	if Cache() != h {
		t.Errorf("Cache() = %T, want registered hooks", Cache())
	}
}

type countingHooks struct {
	NoopPipelineHooks
	NoopSettingsHooks
	NoopHTTPHooks

	mu   sync.Mutex
	hits int
}

func (c *countingHooks) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}
func (c *countingHooks) OnCacheMiss(context.Context, string)     {}
func (c *countingHooks) OnCacheSet(context.Context, string, int) {}
