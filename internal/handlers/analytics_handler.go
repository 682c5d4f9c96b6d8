package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type AnalyticsHandler struct {
	reportService *services.ReportService
}

func NewAnalyticsHandler(reportService *services.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{reportService: reportService}
}

// @Summary Analytics Dashboard
// @Description Monthly trend ending at the selected month plus that month's breakdowns
// @Tags Analytics
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month (defaults to current)"
// @Param months_back query int false "Trend length, 1-24 (default 6)"
// @Success 200 {object} models.AnalyticsBundle
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /analytics [get]
func (h *AnalyticsHandler) Index(c *gin.Context) {
	year, err := intQuery(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	month, err := intQuery(c, "month")
	if err != nil {
		respondError(c, err)
		return
	}
	monthsBack, err := intQuery(c, "months_back")
	if err != nil {
		respondError(c, err)
		return
	}

	bundle, err := h.reportService.Analytics(c.Request.Context(), tenantOf(c), year, month, monthsBack)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}
