// Package logging builds the run-scoped logger: JSON records to a persistent
// file and human-readable text to the console.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const DefaultFile = "eda_pipeline.log"

// Config selects the sinks and filters of a logger.
type Config struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level" toml:"level" json:"level" validate:"omitempty,oneof=debug info warn warning error"`
	// File receives JSON records. Empty disables the file sink.
	File string `yaml:"file" toml:"file" json:"file"`
	// Console enables the text sink.
	Console bool `yaml:"console" toml:"console" json:"console"`
	// Suppress holds regular expressions; matching messages are dropped.
	Suppress []string `yaml:"suppress" toml:"suppress" json:"suppress"`
	// RunID tags every record. Generated when empty.
	RunID string `yaml:"-" toml:"-" json:"-" ignored:"true"`
}

func DefaultConfig() Config {
	return Config{Level: "info", File: DefaultFile, Console: true}
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to the configured sinks. Console output goes
// to console, or stderr when nil. The returned closer releases the log file.
func New(cfg Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Level)
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		closer = file
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: finiteFloats,
		}))
	}
	if cfg.Console {
		if console == nil {
			console = os.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}))
	}

	var h slog.Handler = fanout(handlers)
	if len(cfg.Suppress) > 0 {
		sh, err := NewSuppressHandler(h, cfg.Suppress...)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		h = sh
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return slog.New(h).With("run_id", runID), closer, nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}

// finiteFloats renders NaN and infinities as strings; JSON has no literal
// for them.
func finiteFloats(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindFloat64 {
		if f := a.Value.Float64(); math.IsNaN(f) || math.IsInf(f, 0) {
			return slog.String(a.Key, fmt.Sprint(f))
		}
	}
	return a
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler sends each record to every handler that accepts its level.
type multiHandler []slog.Handler

func fanout(hs []slog.Handler) slog.Handler {
	if len(hs) == 1 {
		return hs[0]
	}
	return multiHandler(hs)
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
