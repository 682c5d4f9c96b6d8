package repository

import (
	"context"
	"errors"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository defines the interface for budget target data access
type BudgetRepository interface {
	Find(ctx context.Context, tenantID string, year, month int) (*models.BudgetTarget, error)
	ListByYear(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error)
	Upsert(ctx context.Context, target *models.BudgetTarget) error
	UpsertMany(ctx context.Context, targets []models.BudgetTarget) error
}

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget target repository
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

// Find returns the target for the month, or nil without error when none is configured
func (r *budgetRepository) Find(ctx context.Context, tenantID string, year, month int) (*models.BudgetTarget, error) {
	var target models.BudgetTarget
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND year = ? AND month = ?", tenantID, year, month).
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *budgetRepository) ListByYear(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error) {
	var targets []models.BudgetTarget
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND year = ?", tenantID, year).
		Order("month ASC").
		Find(&targets).Error
	return targets, err
}

var budgetConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "year"}, {Name: "month"}},
	DoUpdates: clause.AssignmentColumns([]string{"target_revenue", "target_expenses", "notes", "updated_at"}),
}

// Upsert creates or replaces the target for (tenant, year, month) and reloads the stored row into target
func (r *budgetRepository) Upsert(ctx context.Context, target *models.BudgetTarget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertTarget(tx, target)
	})
}

// UpsertMany applies several targets in one transaction; either all are stored or none
func (r *budgetRepository) UpsertMany(ctx context.Context, targets []models.BudgetTarget) error {
	if len(targets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range targets {
			if err := upsertTarget(tx, &targets[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertTarget(tx *gorm.DB, target *models.BudgetTarget) error {
	if err := tx.Clauses(budgetConflict).Create(target).Error; err != nil {
		return err
	}
	// RETURNING support differs between drivers on the update path, so read the row back by its natural key
	var stored models.BudgetTarget
	err := tx.Where("tenant_id = ? AND year = ? AND month = ?", target.TenantID, target.Year, target.Month).
		First(&stored).Error
	if err != nil {
		return err
	}
	*target = stored
	return nil
}
