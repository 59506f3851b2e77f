package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks writes game and HTTP events to a logger at debug level.
// It implements observability.GameHooks and observability.HTTPHooks.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("event")}
}

func (h *logHooks) OnPlacement(level, cells int) {
	h.logger.Debug("placement", "level", level, "cells", cells)
}

func (h *logHooks) OnRejected(row, col int) {
	h.logger.Debug("rejected", "row", row, "col", col)
}

func (h *logHooks) OnLinesCleared(level, count int) {
	h.logger.Debug("lines cleared", "level", level, "count", count)
}

func (h *logHooks) OnLevelComplete(level, score int) {
	h.logger.Debug("level complete", "level", level, "score", score)
}

func (h *logHooks) OnHint(found bool) {
	h.logger.Debug("hint", "found", found)
}

func (h *logHooks) OnReset() {
	h.logger.Debug("reset")
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
