// Package logging builds the JSON line logger shared by the server, the CLI and middleware.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// New returns a slog.Logger that writes one JSON object per line.
// The record time is emitted as "ts" in RFC3339Nano, rendered in loc.
func New(w io.Writer, loc *time.Location, level slog.Level) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})
	return slog.New(h)
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
