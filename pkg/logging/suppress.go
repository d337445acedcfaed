package logging

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
)

// SuppressHandler drops records whose message matches any of its patterns
// and passes everything else to the wrapped handler.
type SuppressHandler struct {
	handler  slog.Handler
	patterns []*regexp.Regexp
}

func NewSuppressHandler(handler slog.Handler, patterns ...string) (*SuppressHandler, error) {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SuppressHandler{handler: handler}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("suppress pattern %q: %w", p, err)
		}
		h.patterns = append(h.patterns, re)
	}
	return h, nil
}

func (h *SuppressHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SuppressHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, re := range h.patterns {
		if re.MatchString(r.Message) {
			return nil
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *SuppressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SuppressHandler{handler: h.handler.WithAttrs(attrs), patterns: h.patterns}
}

func (h *SuppressHandler) WithGroup(name string) slog.Handler {
	return &SuppressHandler{handler: h.handler.WithGroup(name), patterns: h.patterns}
}
