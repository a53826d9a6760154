package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Err wraps an error into the conventional "err" attribute.
func Err(err error) slog.Attr {
	return slog.Any("err", err)
}

// ParseLevel maps a config string to a slog level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler is a compact colored slog.Handler for terminal output.
type Handler struct {
	level slog.Level
	attrs []slog.Attr
	group string

	mu  *sync.Mutex
	out io.Writer
}

func NewHandler(out io.Writer, level slog.Level) *Handler {
	return &Handler{out: out, level: level, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(color.New(color.Faint).Sprint(r.Time.Format(time.TimeOnly)))
		b.WriteString(" ")
	}

	switch r.Level {
	case slog.LevelDebug:
		b.WriteString(color.New(color.FgCyan).Sprint("DEBUG"))
	case slog.LevelWarn:
		b.WriteString(color.New(color.FgYellow).Sprint("WARN "))
	case slog.LevelError:
		b.WriteString(color.New(color.FgRed).Sprint("ERROR"))
	default:
		b.WriteString(color.New(color.FgGreen).Sprint("INFO "))
	}
	b.WriteString(" ")
	b.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		b.WriteString(" ")
		b.WriteString(color.New(color.Faint).Sprintf("%s=", key))
		b.WriteString(fmt.Sprintf("%v", a.Value.Resolve().Any()))
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	if name != "" {
		if clone.group != "" {
			clone.group += "." + name
		} else {
			clone.group = name
		}
	}
	return &clone
}
