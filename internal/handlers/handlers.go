package handlers

import (
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Receipt   *ReceiptHandler
	Expense   *ExpenseHandler
	Budget    *BudgetHandler
	Report    *ReportHandler
	Analytics *AnalyticsHandler
	Job       *JobHandler
	Audit     *AuditHandler
}

// NewHandlers creates all handler instances. loc is the reporting timezone used to read
// date-only request values.
func NewHandlers(svcs *services.Services, loc *time.Location) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		Health:    NewHealthHandler(),
		Receipt:   NewReceiptHandler(svcs.Receipt, svcs.Audit, loc),
		Expense:   NewExpenseHandler(svcs.Expense, svcs.Audit, loc),
		Budget:    NewBudgetHandler(svcs.Budget, svcs.Audit),
		Report:    NewReportHandler(svcs.Report, svcs.Export),
		Analytics: NewAnalyticsHandler(svcs.Report),
		Job:       NewJobHandler(svcs.Job),
		Audit:     NewAuditHandler(svcs.Audit),
	}
}
