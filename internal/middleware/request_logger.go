package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// RequestIDHeader carries the request id in both directions; ContextRequestID holds it in the gin context
const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "requestID"
)

// RequestLogger tags each request with an id, attaches a request-scoped logger to the
// request context and logs the outcome using slog
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(ContextRequestID, requestID)

		reqLogger := logger.Log.With(slog.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		// Process request
		c.Next()

		// Skip logging for health check to avoid noise
		if path == "/api/v1/health" {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", statusCode),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", latency),
			slog.String("user_agent", c.Request.UserAgent()),
		}

		if errorMessage != "" {
			attrs = append(attrs, slog.String("error", errorMessage))
		}

		// Add tenant if authenticated
		if tenantID := GetTenantID(c); tenantID != "" {
			attrs = append(attrs, slog.String("tenant_id", tenantID))
		}

		msg := "Incoming request"
		if statusCode >= 500 {
			reqLogger.Error(msg, attrs...)
		} else if statusCode >= 400 {
			reqLogger.Warn(msg, attrs...)
		} else {
			reqLogger.Info(msg, attrs...)
		}
	}
}
