package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler delivers each record to every attached sink, so a request
// error shows up on stdout and in the system_logs table at the same time.
// A failing sink does not block delivery to the others.
type MultiHandler struct {
	sinks []slog.Handler
}

func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range m.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, sink := range m.sinks {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		if err := sink.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(m.sinks))
	for i, sink := range m.sinks {
		sinks[i] = sink.WithAttrs(attrs)
	}
	return &MultiHandler{sinks: sinks}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	sinks := make([]slog.Handler, len(m.sinks))
	for i, sink := range m.sinks {
		sinks[i] = sink.WithGroup(name)
	}
	return &MultiHandler{sinks: sinks}
}
