package handlers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/reporting"
	"github.com/sjperalta/clinic-billing-api/internal/services"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// errorStatus maps domain errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, reporting.ErrInvalidPeriod),
		errors.Is(err, reporting.ErrInvalidReportType),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, reporting.ErrMissingTenant):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicate), errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Server errors are logged, reported to Sentry through
// the request hub and answered with a generic message.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("Request failed", "path", c.FullPath(), "error", err)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("tenant_id", tenantOf(c))
			hub.CaptureException(err)
		})
	}
	c.JSON(status, gin.H{"error": "Internal server error"})
}
