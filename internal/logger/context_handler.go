// Package logger provides structured logging utilities for the application.
package logger

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/abitbot/abit-advisor-go/internal/ctxutil"
)

// ContextHandler is a custom slog.Handler that automatically extracts
// tracing values (chat ID, program slug, ingestion run ID) from the
// context and adds them as attributes to log records.
//
// This handler wraps another handler and intercepts all logging calls
// to enrich log entries with context values, eliminating the need to
// manually extract and pass these values at every logging call site.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the provided handler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// This delegates to the wrapped handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle processes the log record by extracting context values and adding
// them as attributes before delegating to the wrapped handler.
//
// Context values extracted:
// - chat_id: Telegram chat the event belongs to
// - slug: program identifier currently being ingested
// - run_id: ingestion run ID for log correlation
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if chatID, ok := ctxutil.GetChatID(ctx); ok {
		r.AddAttrs(slog.String("chat_id", strconv.FormatInt(chatID, 10)))
	}

	if slug := ctxutil.GetSlug(ctx); slug != "" {
		r.AddAttrs(slog.String("slug", slug))
	}

	if runID, ok := ctxutil.GetRunID(ctx); ok && runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}

	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose wrapped handler has the given attributes.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler whose wrapped handler has the given group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
