// Package logger configures the process-wide slog logger and hands out
// module-scoped children.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	rootLogger = slog.New(newHandler(os.Stderr, slog.LevelInfo))
)

// Setup replaces the root logger. Output goes to w at or above level.
func Setup(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	rootLogger = slog.New(newHandler(w, level))
}

// GetLogger returns a logger with the given prefix for easier filtering
func GetLogger(prefix string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return rootLogger.With("module", prefix)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel converts debug, info, warn (warning) or error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// handler writes one line per record:
//
//	[module] LEVEL: message (key=value, ...)
type handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func newHandler(w io.Writer, level slog.Level) *handler {
	return &handler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, record slog.Record) error {
	levelStr := record.Level.String()
	if record.Level == slog.LevelWarn {
		levelStr = "WARNING"
	}

	var module string
	var args []string
	add := func(a slog.Attr) {
		if a.Key == "module" {
			module = a.Value.String()
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		args = append(args, fmt.Sprintf("%s=%v", key, a.Value))
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	var sb strings.Builder
	if module != "" {
		fmt.Fprintf(&sb, "[%s] ", module)
	}
	fmt.Fprintf(&sb, "%s: %s", levelStr, record.Message)
	if len(args) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(args, ", "))
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &handler{mu: h.mu, w: h.w, level: h.level, attrs: newAttrs, group: h.group}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{mu: h.mu, w: h.w, level: h.level, attrs: h.attrs, group: name}
}
