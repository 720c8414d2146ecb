package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// RequestIDHeader carries the per-request id, generated when the client sends none.
const RequestIDHeader = "X-Request-ID"

// New returns a colored tint logger for development and a JSON logger otherwise.
func New(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// RequestID tags each request with an id and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("req_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// StructuredLogger logs each request on completion. RequestID must run first.
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		requestLogger := logger.With(
			slog.String("req_id", c.GetString("req_id")),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("remote_addr", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes_written", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			requestLogger.ErrorContext(c.Request.Context(), "Request completed", attrs...)
		case c.Writer.Status() >= 400:
			requestLogger.WarnContext(c.Request.Context(), "Request completed", attrs...)
		default:
			requestLogger.InfoContext(c.Request.Context(), "Request completed", attrs...)
		}
	}
}
