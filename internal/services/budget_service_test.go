package services

import (
	"context"
	"testing"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock BudgetRepository
type mockBudgetRepository struct {
	repository.BudgetRepository
	upserted []models.BudgetTarget
	batches  int
}

func (m *mockBudgetRepository) Upsert(ctx context.Context, target *models.BudgetTarget) error {
	target.ID = uint(len(m.upserted) + 1)
	m.upserted = append(m.upserted, *target)
	return nil
}

func (m *mockBudgetRepository) UpsertMany(ctx context.Context, targets []models.BudgetTarget) error {
	m.batches++
	m.upserted = append(m.upserted, targets...)
	return nil
}

func (m *mockBudgetRepository) ListByYear(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error) {
	var out []models.BudgetTarget
	for _, t := range m.upserted {
		if t.TenantID == tenantID && t.Year == year {
			out = append(out, t)
		}
	}
	return out, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestBudgetServiceSetMonth(t *testing.T) {
	repo := &mockBudgetRepository{}
	svc := NewBudgetService(repo)

	target, err := svc.SetMonth(context.Background(), "clinic-1", 2024, MonthTarget{Month: 3, TargetRevenue: 100000, TargetExpenses: int64Ptr(40000)})
	require.NoError(t, err)

	assert.Equal(t, "clinic-1", target.TenantID)
	assert.Equal(t, 2024, target.Year)
	assert.Equal(t, 3, target.Month)

	listed, err := svc.ListYear(context.Background(), "clinic-1", 2024)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestBudgetServiceSetMonthValidation(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		input MonthTarget
	}{
		{"month zero", 2024, MonthTarget{Month: 0, TargetRevenue: 1}},
		{"month thirteen", 2024, MonthTarget{Month: 13, TargetRevenue: 1}},
		{"negative revenue", 2024, MonthTarget{Month: 1, TargetRevenue: -1}},
		{"negative expenses", 2024, MonthTarget{Month: 1, TargetRevenue: 1, TargetExpenses: int64Ptr(-5)}},
		{"year zero", 0, MonthTarget{Month: 1, TargetRevenue: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBudgetRepository{}
			_, err := NewBudgetService(repo).SetMonth(context.Background(), "clinic-1", tt.year, tt.input)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, repo.upserted)
		})
	}
}

func TestBudgetServiceSetYear(t *testing.T) {
	repo := &mockBudgetRepository{}
	svc := NewBudgetService(repo)

	targets, err := svc.SetYear(context.Background(), "clinic-1", 2024, []MonthTarget{
		{Month: 1, TargetRevenue: 1000},
		{Month: 2, TargetRevenue: 2000},
	})
	require.NoError(t, err)
	assert.Len(t, targets, 2)
	assert.Equal(t, 1, repo.batches)

	_, err = svc.SetYear(context.Background(), "clinic-1", 2024, []MonthTarget{{Month: 4, TargetRevenue: 1}, {Month: 4, TargetRevenue: 2}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetYear(context.Background(), "clinic-1", 2024, []MonthTarget{{Month: 5, TargetRevenue: 1}, {Month: 14, TargetRevenue: 2}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetYear(context.Background(), "clinic-1", 2024, nil)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 1, repo.batches, "rejected batches store nothing")
}

func TestBudgetServiceListYearRejectsInvalidYear(t *testing.T) {
	_, err := NewBudgetService(&mockBudgetRepository{}).ListYear(context.Background(), "clinic-1", 0)
	assert.ErrorIs(t, err, ErrValidation)
}
