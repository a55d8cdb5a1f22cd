package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonwraymond/studentops/auth"
	"github.com/jonwraymond/studentops/observe"
)

const maxCorrelationIDLen = 128

// CorrelationMiddleware adopts the caller's correlation ID, or generates
// one, and attaches it to the request context and the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(observe.HeaderCorrelationID)
		if id == "" {
			id = c.GetHeader("X-Request-Id")
		}
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(observe.WithCorrelationID(c.Request.Context(), id))
		c.Header(observe.HeaderCorrelationID, id)
		c.Next()
	}
}

// LoggerMiddleware logs one entry per request. Probe routes log at debug.
func LoggerMiddleware(log observe.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []observe.Field{
			observe.F("method", c.Request.Method),
			observe.F("path", path),
			observe.F("status", c.Writer.Status()),
			observe.F("duration_ms", time.Since(start).Milliseconds()),
			observe.F("client_ip", c.ClientIP()),
		}
		if principal := auth.PrincipalFromContext(c.Request.Context()); principal != "" {
			fields = append(fields, observe.F("principal", principal))
		}

		ctx := c.Request.Context()
		switch {
		case len(c.Errors) > 0:
			fields = append(fields, observe.F("errors", c.Errors.String()))
			log.Error(ctx, "HTTP request with errors", fields...)
		case isProbePath(path):
			log.Debug(ctx, "HTTP request", fields...)
		default:
			log.Info(ctx, "HTTP request", fields...)
		}
	}
}

func isProbePath(path string) bool {
	return path == "/healthz" || path == "/readyz" || strings.HasPrefix(path, "/health") || path == "/metrics"
}

// RecoveryMiddleware turns a handler panic into a 500 JSON response.
func RecoveryMiddleware(log observe.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			observe.F("panic", recovered),
			observe.F("path", c.Request.URL.Path),
		)
		abortJSON(c, http.StatusInternalServerError, "Internal server error")
	})
}

// AuthMiddleware authenticates requests with a. A nil a admits every
// request as anonymous.
func AuthMiddleware(a auth.Authenticator, log observe.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if a == nil {
			c.Request = c.Request.WithContext(auth.WithIdentity(ctx, auth.AnonymousIdentity()))
			c.Next()
			return
		}

		id, err := auth.Verify(ctx, a, c.Request.Header, c.Request.URL.Path)
		if err != nil {
			log.Warn(ctx, "request not authenticated",
				observe.F("path", c.Request.URL.Path),
				observe.F("error", err),
			)
			c.Header("WWW-Authenticate", auth.Challenge(a, "studentops"))
			abortJSON(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(ctx, id))
		c.Next()
	}
}

// abortJSON writes {"error", "correlation_id"} and stops the chain.
func abortJSON(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error":          msg,
		"correlation_id": observe.CorrelationIDFromContext(c.Request.Context()),
	})
}
