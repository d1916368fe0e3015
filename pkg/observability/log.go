package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level, failures at
// warn. It implements all four hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("events")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, tileCount, columns int) {
	h.logger.Debug("layout start", "tiles", tileCount, "columns", columns)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, columns, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "columns", columns, "error", err)
		return
	}
	h.logger.Debug("layout done", "columns", columns, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnSettingsRead(_ context.Context, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("settings read failed", "error", err)
		return
	}
	h.logger.Debug("settings read", "duration", d)
}

func (h *LogHooks) OnSettingsChange(_ context.Context, key string) {
	if key == "" {
		key = "*"
	}
	h.logger.Debug("settings changed", "key", key)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ SettingsHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
