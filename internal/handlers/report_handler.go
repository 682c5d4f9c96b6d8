package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

func reportParams(c *gin.Context) (services.ReportParams, error) {
	year, err := intQuery(c, "year")
	if err != nil {
		return services.ReportParams{}, err
	}
	month, err := intQuery(c, "month")
	if err != nil {
		return services.ReportParams{}, err
	}
	return services.ReportParams{Type: c.Query("type"), Year: year, Month: month}, nil
}

// @Summary Financial Report
// @Description Monthly or yearly revenue, collection, expense, profit/loss and budget report.
// @Description Omitting year and month reports the current month in the clinic's timezone.
// @Tags Reports
// @Produce json
// @Param type query string false "monthly (default) or yearly"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12), monthly reports only"
// @Success 200 {object} models.Report
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Show(c *gin.Context) {
	params, err := reportParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reportService.Report(c.Request.Context(), tenantOf(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Export Financial Report
// @Description Download the report as CSV, XLSX or PDF. The file name derives from the period.
// @Tags Reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param format query string false "csv (default), xlsx or pdf"
// @Param type query string false "monthly (default) or yearly"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {file} file "clinic_report_2024-03.csv"
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	params, err := reportParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := h.exportService.Export(c.Request.Context(), tenantOf(c), params, c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
