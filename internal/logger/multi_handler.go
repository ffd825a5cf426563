package logger

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler fans log records out to multiple handlers, e.g. the local
// JSON handler plus the Better Stack shipper. Records are cloned per
// handler to preserve slog.Handler semantics.
type MultiHandler struct {
	targets []slog.Handler
}

// NewMultiHandler creates a MultiHandler with the provided handlers.
// Nil handlers are skipped.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	m := &MultiHandler{targets: make([]slog.Handler, 0, len(handlers))}
	for _, h := range handlers {
		if h != nil {
			m.targets = append(m.targets, h)
		}
	}
	return m
}

// Enabled reports whether any underlying handler is enabled for the given level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range m.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches the record to every enabled handler. One handler
// failing does not stop delivery to the others.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, t := range m.targets {
		if !t.Enabled(ctx, r.Level) {
			continue
		}
		if err := t.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs applies the attributes to every handler.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.fork(func(t slog.Handler) slog.Handler { return t.WithAttrs(attrs) })
}

// WithGroup applies the group to every handler.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.fork(func(t slog.Handler) slog.Handler { return t.WithGroup(name) })
}

func (m *MultiHandler) fork(apply func(slog.Handler) slog.Handler) *MultiHandler {
	next := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		next[i] = apply(t)
	}
	return &MultiHandler{targets: next}
}
