package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// maxPostingsPerRun bounds catch-up for a template that has not been posted for a long time
const maxPostingsPerRun = 36

type ExpenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

// normalizeExpense applies the recurrence rules shared by create and update
func normalizeExpense(e *models.Expense) error {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.ToLower(strings.TrimSpace(e.Category))
	if !e.IsRecurring {
		e.RecurringFrequency = nil
		return nil
	}
	if e.RecurringFrequency == nil || *e.RecurringFrequency == "" {
		return fmt.Errorf("%w: recurring_frequency is required for recurring expenses", ErrValidation)
	}
	return nil
}

func (s *ExpenseService) Create(ctx context.Context, tenantID string, expense *models.Expense) (*models.Expense, error) {
	expense.ID = 0
	expense.TenantID = tenantID
	expense.RecurringSourceID = nil
	expense.LastPostedAt = nil

	if err := normalizeExpense(expense); err != nil {
		return nil, err
	}
	if err := validateStruct(expense); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Expense recorded", "expense_id", expense.ID, "category", expense.Category, "amount", expense.Amount)
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, tenantID string, id uint) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, query *repository.ExpenseQuery) ([]models.Expense, int64, error) {
	return s.repo.List(ctx, query)
}

// Update replaces the editable fields of an expense. Posting bookkeeping is preserved.
func (s *ExpenseService) Update(ctx context.Context, tenantID string, id uint, changes *models.Expense) (*models.Expense, error) {
	expense, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	expense.Description = changes.Description
	expense.Amount = changes.Amount
	expense.Category = changes.Category
	expense.ExpenseDate = changes.ExpenseDate
	expense.IsRecurring = changes.IsRecurring
	expense.RecurringFrequency = changes.RecurringFrequency
	expense.Vendor = changes.Vendor
	expense.Notes = changes.Notes
	if expense.RecurringSourceID != nil {
		// generated occurrences never become templates themselves
		expense.IsRecurring = false
	}

	if err := normalizeExpense(expense); err != nil {
		return nil, err
	}
	if err := validateStruct(expense); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, tenantID string, id uint) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return notFound(err)
	}
	logger.FromContext(ctx).Info("Expense deleted", "expense_id", id)
	return nil
}

// PostRecurring materializes every recurring occurrence due on or before asOf, across all tenants.
// Each template continues from its last posting (or its own date), so re-running is a no-op.
// Returns how many occurrences were posted; failures on one template do not stop the others.
func (s *ExpenseService) PostRecurring(ctx context.Context, asOf time.Time) (int, error) {
	templates, err := s.repo.FindRecurringTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load recurring expenses: %w", err)
	}

	posted := 0
	var errs []error
	for i := range templates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		n, err := s.postTemplate(ctx, &templates[i], asOf)
		posted += n
		if err != nil {
			errs = append(errs, fmt.Errorf("expense %d: %w", templates[i].ID, err))
		}
	}

	if posted > 0 {
		logger.Info("Recurring expenses posted", "count", posted, "as_of", asOf.Format(time.DateOnly))
	}
	return posted, errors.Join(errs...)
}

func (s *ExpenseService) postTemplate(ctx context.Context, template *models.Expense, asOf time.Time) (int, error) {
	last := template.ExpenseDate
	if template.LastPostedAt != nil {
		last = *template.LastPostedAt
	}

	posted := 0
	for posted < maxPostingsPerRun {
		next, ok := template.NextOccurrence(last)
		if !ok || next.After(asOf) {
			break
		}
		occurrence := &models.Expense{
			TenantID:          template.TenantID,
			Description:       template.Description,
			Amount:            template.Amount,
			Category:          template.Category,
			ExpenseDate:       next,
			Vendor:            template.Vendor,
			Notes:             template.Notes,
			RecurringSourceID: &template.ID,
		}
		if err := s.repo.PostOccurrence(ctx, template, occurrence); err != nil {
			return posted, err
		}
		template.LastPostedAt = &next
		last = next
		posted++
	}
	return posted, nil
}
