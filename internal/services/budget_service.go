package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// MonthTarget is the editable part of one month's budget target
type MonthTarget struct {
	Month          int     `json:"month"`
	TargetRevenue  int64   `json:"target_revenue"`
	TargetExpenses *int64  `json:"target_expenses"`
	Notes          *string `json:"notes"`
}

type BudgetService struct {
	repo repository.BudgetRepository
}

func NewBudgetService(repo repository.BudgetRepository) *BudgetService {
	return &BudgetService{repo: repo}
}

// ListYear returns the configured targets of the year ordered by month; unconfigured months are absent
func (s *BudgetService) ListYear(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive", ErrValidation)
	}
	return s.repo.ListByYear(ctx, tenantID, year)
}

// SetMonth creates or replaces the target of one month
func (s *BudgetService) SetMonth(ctx context.Context, tenantID string, year int, input MonthTarget) (*models.BudgetTarget, error) {
	target := buildTarget(tenantID, year, input)
	if err := validateStruct(&target); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, &target); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Budget target set", "year", year, "month", input.Month, "target_revenue", input.TargetRevenue)
	return &target, nil
}

// SetYear replaces several months at once. Every month is validated before anything is stored,
// and a month may appear only once.
func (s *BudgetService) SetYear(ctx context.Context, tenantID string, year int, inputs []MonthTarget) ([]models.BudgetTarget, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one month is required", ErrValidation)
	}

	seen := make(map[int]bool, len(inputs))
	targets := make([]models.BudgetTarget, 0, len(inputs))
	for _, input := range inputs {
		if seen[input.Month] {
			return nil, fmt.Errorf("%w: month %d listed twice", ErrValidation, input.Month)
		}
		seen[input.Month] = true

		target := buildTarget(tenantID, year, input)
		if err := validateStruct(&target); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	if err := s.repo.UpsertMany(ctx, targets); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Budget targets set", "year", year, "months", len(targets))
	return targets, nil
}

func buildTarget(tenantID string, year int, input MonthTarget) models.BudgetTarget {
	return models.BudgetTarget{
		TenantID:       tenantID,
		Year:           year,
		Month:          input.Month,
		TargetRevenue:  input.TargetRevenue,
		TargetExpenses: input.TargetExpenses,
		Notes:          input.Notes,
	}
}
