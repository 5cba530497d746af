package fanout

import (
	"context"
	"errors"
	"log/slog"
)

// Handler passes every record to each wrapped handler whose level admits it.
type Handler struct {
	handlers []slog.Handler
}

func New(handlers ...slog.Handler) *Handler {
	return &Handler{handlers: handlers}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := make([]slog.Handler, 0, len(h.handlers))
	for _, hh := range h.handlers {
		res = append(res, hh.WithAttrs(attrs))
	}

	return &Handler{handlers: res}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	res := make([]slog.Handler, 0, len(h.handlers))
	for _, hh := range h.handlers {
		res = append(res, hh.WithGroup(name))
	}

	return &Handler{handlers: res}
}
