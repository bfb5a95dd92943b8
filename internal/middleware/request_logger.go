package middleware

import (
	"net/http"
	"time"

	"github.com/damoang/angple-notes/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the correlation id
const RequestIDKey = "request_id"

// RequestLogger tags each request with a correlation id and writes one access
// line per request once the response is done. Handlers that hit a datastore
// failure attach it with c.Error and it shows up on that line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()[:8]
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		log := logger.WithRequestID(requestID)
		event := accessEvent(&log, c)

		route := c.FullPath()
		if route != "" {
			event.Str("route", route)
		}
		if id := c.Param("id"); id != "" {
			event.Str("note_id", id)
		}
		if route == "/api/notes/search" {
			event.Str("q", c.Query("q"))
		}
		if last := c.Errors.Last(); last != nil {
			event.Err(last.Err)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Msg("notes request")
	}
}

// accessEvent picks the level: preflights are debug noise, 4xx warn, 5xx error.
func accessEvent(log *zerolog.Logger, c *gin.Context) *zerolog.Event {
	status := c.Writer.Status()
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case status >= http.StatusBadRequest:
		return log.Warn()
	case c.Request.Method == http.MethodOptions:
		return log.Debug()
	}
	return log.Info()
}
