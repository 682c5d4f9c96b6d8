package services

import (
	"context"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/reporting"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// ReportParams selects a report. Zero Year/Month default to the current period in the reporting timezone.
type ReportParams struct {
	Type  string
	Year  int
	Month int
}

type ReportService struct {
	engine *reporting.Engine
	now    func() time.Time
}

func NewReportService(engine *reporting.Engine) *ReportService {
	return &ReportService{engine: engine, now: time.Now}
}

// withDefaults fills the omitted parts of params from the current time
func (s *ReportService) withDefaults(params ReportParams) ReportParams {
	if params.Type == "" {
		params.Type = models.ReportTypeMonthly
	}
	current := s.engine.Resolver().CurrentSelector(reporting.ModeMonth, s.now())
	if params.Year == 0 {
		params.Year = current.Year
		if params.Month == 0 {
			params.Month = current.Month
		}
	}
	return params
}

// Report computes the financial report for the tenant
func (s *ReportService) Report(ctx context.Context, tenantID string, params ReportParams) (models.Report, error) {
	params = s.withDefaults(params)
	start := time.Now()

	report, err := s.engine.ComputeReport(ctx, tenantID, reporting.ReportRequest{
		Type:  params.Type,
		Year:  params.Year,
		Month: params.Month,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("Report failed", "type", params.Type, "year", params.Year, "month", params.Month, "error", err)
		return models.Report{}, err
	}
	report.IsFuture = s.IsFuturePeriod(report.Period.Year, report.Period.Month)

	logger.FromContext(ctx).Info("Report computed",
		"type", params.Type, "period", report.Period.Label, "receipts", report.Revenue.ReceiptCount, "elapsed", time.Since(start))
	return report, nil
}

// Analytics computes the trend dashboard bundle ending at (year, month)
func (s *ReportService) Analytics(ctx context.Context, tenantID string, year, month, monthsBack int) (models.AnalyticsBundle, error) {
	if year == 0 {
		current := s.engine.Resolver().CurrentSelector(reporting.ModeMonth, s.now())
		year = current.Year
		if month == 0 {
			month = current.Month
		}
	}

	bundle, err := s.engine.ComputeAnalytics(ctx, tenantID, year, month, monthsBack)
	if err != nil {
		logger.FromContext(ctx).Warn("Analytics failed", "year", year, "month", month, "months_back", monthsBack, "error", err)
		return models.AnalyticsBundle{}, err
	}
	bundle.IsFuture = s.IsFuturePeriod(year, month)
	return bundle, nil
}

// IsFuturePeriod reports whether the month (or the whole year when month is 0) starts after the current time
func (s *ReportService) IsFuturePeriod(year, month int) bool {
	sel := reporting.Selector{Mode: reporting.ModeMonth, Year: year, Month: month}
	if month == 0 {
		sel = reporting.Selector{Mode: reporting.ModeYear, Year: year}
	}
	return s.engine.Resolver().IsFuture(sel, s.now())
}
