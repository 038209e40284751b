package middleware

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"quoteapi/internal/logging"
)

// Logger writes one structured line per request: request_id, method, path, status and latency_ms.
func Logger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.LogAttrs(c.UserContext(), level, "http_request",
			slog.String("request_id", RequestIDFrom(c)),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
			slog.Int("bytes_in", len(c.Request().Body())),
		)
		return err
	}
}

// LoggerWithWriter is Logger over a JSON handler writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc, slog.LevelInfo))
}
