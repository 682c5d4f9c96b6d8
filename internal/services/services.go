package services

import (
	"github.com/sjperalta/clinic-billing-api/internal/config"
	"github.com/sjperalta/clinic-billing-api/internal/jobs"
	"github.com/sjperalta/clinic-billing-api/internal/reporting"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Receipt *ReceiptService
	Expense *ExpenseService
	Budget  *BudgetService
	Report  *ReportService
	Export  *ExportService
	Job     *JobService
	Audit   *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	engine := reporting.NewEngine(
		repository.NewRecordStore(repos),
		reporting.NewResolver(cfg.ReportLocation),
		cfg.ReportTimeout,
	)
	reportSvc := NewReportService(engine)
	expenseSvc := NewExpenseService(repos.Expense)

	return &Services{
		Receipt: NewReceiptService(repos.Receipt),
		Expense: expenseSvc,
		Budget:  NewBudgetService(repos.Budget),
		Report:  reportSvc,
		Export:  NewExportService(reportSvc),
		Job:     NewJobService(worker, expenseSvc, cfg.ReportLocation),
		Audit:   NewAuditService(repos.Audit),
	}
}
