package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
)

// ErrorResponse is the JSON body for failures outside the HTML surface
type ErrorResponse struct {
	Error string `json:"error"`
}

// Logger writes one line per request and every error attached with c.Error
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logging.Ctx(c.Request.Context())
		for _, e := range c.Errors {
			log.Error().Err(e.Err).Str("path", c.FullPath()).Msg("Request error")
		}

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Bool("htmx", c.GetHeader("HX-Request") == "true").
			Msg("Request handled")
	}
}

// Recovery logs a panic and answers 500 with a JSON error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
	})
}
