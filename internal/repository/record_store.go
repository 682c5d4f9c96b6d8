package repository

import (
	"context"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/reporting"
)

// recordStore exposes the receipt, expense and budget repositories as the report engine's read model
type recordStore struct {
	receipts ReceiptRepository
	expenses ExpenseRepository
	budgets  BudgetRepository
}

// NewRecordStore adapts the repositories to reporting.RecordStore
func NewRecordStore(repos *Repositories) reporting.RecordStore {
	return &recordStore{
		receipts: repos.Receipt,
		expenses: repos.Expense,
		budgets:  repos.Budget,
	}
}

func (s *recordStore) FindReceipts(ctx context.Context, tenantID string, rng reporting.DateRange) ([]models.Receipt, error) {
	return s.receipts.FindInRange(ctx, tenantID, rng.Start, rng.End)
}

func (s *recordStore) FindExpenses(ctx context.Context, tenantID string, rng reporting.DateRange) ([]models.Expense, error) {
	return s.expenses.FindInRange(ctx, tenantID, rng.Start, rng.End)
}

func (s *recordStore) FindBudgetTarget(ctx context.Context, tenantID string, year, month int) (*models.BudgetTarget, error) {
	return s.budgets.Find(ctx, tenantID, year, month)
}

func (s *recordStore) FindBudgetTargets(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error) {
	return s.budgets.ListByYear(ctx, tenantID, year)
}
