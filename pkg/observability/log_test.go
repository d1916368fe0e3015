package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	h.OnLayoutComplete(ctx, 4, 3, time.Millisecond, nil)
	h.OnSettingsChange(ctx, "")
	h.OnCacheSet(ctx, "artifact", 2048)
	h.OnResponse(ctx, "POST", "/v1/layout", 503, time.Second)
	h.OnRenderComplete(ctx, []string{"png"}, 0, errors.New("decode failed"))

	out := buf.String()
	for _, want := range []string{"layout done", "rows=3", "key=*", "bytes=2048", "status=503", "render failed", "decode failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheHit(context.Background(), "layout")
	h.OnRequest(context.Background(), "GET", "/healthz")
	if buf.Len() != 0 {
		t.Errorf("debug events logged at info level: %q", buf.String())
	}
}

func TestRegister(t *testing.T) {
	defer Reset()
	h := NewLogHooks(log.New(&bytes.Buffer{}))
	Register(h)

	if Pipeline() != PipelineHooks(h) || Settings() != SettingsHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("Register should install every interface the value implements")
	}

	Reset()
	Register(NoopCacheHooks{})
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("cache hooks not installed")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("pipeline hooks should be untouched")
	}
	if Register("not hooks") {
		t.Error("Register(string) = true, want false")
	}
}
