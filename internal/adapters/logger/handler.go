package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/recipe/internal/ui/output"
	"go.trai.ch/recipe/internal/ui/style"
)

// ForwardedKey marks a record as a line of child process output.
const ForwardedKey = "forwarded"

// PrettyHandler is a slog.Handler for the terminal. Messages ending in a colon
// are section headers, forwarded solver output is indented behind a gutter.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	forwarded := false
	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrs = append(attrs, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ForwardedKey {
			forwarded = attr.Value.Bool()
			return true
		}
		attrs = append(attrs, formatAttr(h.group, attr))
		return true
	})

	msg := r.Message
	if len(attrs) > 0 {
		msg += " " + strings.Join(attrs, " ")
	}

	var styled termenv.Style
	switch {
	case r.Level >= slog.LevelError:
		styled = h.out.String(style.Cross + " " + msg).Foreground(h.out.Color(string(style.Red)))
	case r.Level >= slog.LevelWarn:
		styled = h.out.String(style.Warning + " " + msg).Foreground(h.out.Color(string(style.Yellow)))
	case forwarded:
		styled = h.out.String("  " + style.Gutter + " " + msg).Foreground(h.out.Color(string(style.Muted)))
	case strings.HasSuffix(r.Message, ":"):
		styled = h.out.String(msg).Foreground(h.out.Color(string(style.Accent))).Bold()
	default:
		styled = h.out.String(msg)
	}

	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = slices.Concat(h.attrs, attrs)
	return &next
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

func formatAttr(group string, attr slog.Attr) string {
	if group == "" {
		return attr.Key + "=" + attr.Value.String()
	}
	return group + "." + attr.Key + "=" + attr.Value.String()
}
