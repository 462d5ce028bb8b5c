package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, failures at
// error level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse started", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse finished", "source", source, "bytes", bytes, "took", d)
}

func (h *LogHooks) OnConvertStart(_ context.Context, source string) {
	h.logger.Debug("conversion started", "source", source)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, source string, s ConvertStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("conversion failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("conversion finished", "source", source,
		"resources", s.Resources, "statements", s.Statements, "warnings", s.Warnings,
		"cached", s.Cached, "took", d)
}

func (h *LogHooks) OnItemDropped(_ context.Context, kind, id string) {
	h.logger.Debug("item dropped", "kind", kind, "id", id)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}
