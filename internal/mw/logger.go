package mw

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/apperr"
)

// RequestIDHeader is echoed back and attached to every request log line.
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request. 5xx responses are logged at
// error level, 4xx at warn and the rest at info.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if id := c.GetHeader(RequestIDHeader); id != "" {
			c.Header(RequestIDHeader, id)
		}

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if id := c.GetHeader(RequestIDHeader); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		log.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}

// Recovery turns a panic in a later handler into a 500 and logs it with the
// stack. The panic value is never sent to the client.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			log.ErrorContext(c.Request.Context(), "panic recovered",
				"error", fmt.Sprint(recovered),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetHeader(RequestIDHeader),
				"stack", string(debug.Stack()))

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":    http.StatusInternalServerError,
				"error":     http.StatusText(http.StatusInternalServerError),
				"kind":      apperr.KindInternal,
				"message":   "An unexpected error occurred",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		}()
		c.Next()
	}
}
