package repository

import (
	"context"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"gorm.io/gorm"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	FindByID(ctx context.Context, tenantID string, id uint) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, tenantID string, id uint) error
	List(ctx context.Context, query *ExpenseQuery) ([]models.Expense, int64, error)
	FindInRange(ctx context.Context, tenantID string, start, end time.Time) ([]models.Expense, error)
	FindRecurringTemplates(ctx context.Context) ([]models.Expense, error)
	PostOccurrence(ctx context.Context, template *models.Expense, occurrence *models.Expense) error
}

// ExpenseQuery extends ListQuery with expense-specific filters
type ExpenseQuery struct {
	*ListQuery
	TenantID  string
	Category  string
	Recurring *bool
	Window    DateWindow
}

var expenseSortColumns = map[string]string{
	"expense_date": "expenses.expense_date",
	"amount":       "expenses.amount",
	"category":     "expenses.category",
	"created_at":   "expenses.created_at",
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) FindByID(ctx context.Context, tenantID string, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete removes the expense; gorm.ErrRecordNotFound when it does not belong to the tenant
func (r *expenseRepository) Delete(ctx context.Context, tenantID string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context, query *ExpenseQuery) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	if query.ListQuery == nil {
		query.ListQuery = NewListQuery()
	}

	db := r.db.WithContext(ctx).Model(&models.Expense{}).
		Where("expenses.tenant_id = ?", query.TenantID)

	if query.Category != "" {
		db = db.Where("expenses.category = ?", query.Category)
	}
	if query.Recurring != nil {
		db = db.Where("expenses.is_recurring = ?", *query.Recurring)
	}
	db = query.Window.apply(db, "expenses.expense_date")

	if query.Search != "" {
		term := likePattern(query.Search)
		db = db.Where("(LOWER(expenses.description) LIKE ? OR LOWER(COALESCE(expenses.vendor, '')) LIKE ?)", term, term)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order(query.order(expenseSortColumns, "expenses.expense_date DESC")).Order("expenses.id DESC")
	err := query.paginate(db).Find(&expenses).Error

	return expenses, total, err
}

// FindInRange returns every expense of the tenant dated within [start, end], oldest first
func (r *expenseRepository) FindInRange(ctx context.Context, tenantID string, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND expense_date >= ? AND expense_date <= ?", tenantID, start, end).
		Order("expense_date ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// FindRecurringTemplates returns the recurring expenses of all tenants that are not
// themselves generated occurrences
func (r *expenseRepository) FindRecurringTemplates(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("is_recurring = ? AND recurring_source_id IS NULL", true).
		Order("tenant_id ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// PostOccurrence stores a generated occurrence and advances the template's posting marker atomically
func (r *expenseRepository) PostOccurrence(ctx context.Context, template *models.Expense, occurrence *models.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(occurrence).Error; err != nil {
			return err
		}
		return tx.Model(&models.Expense{}).
			Where("id = ?", template.ID).
			Update("last_posted_at", occurrence.ExpenseDate).Error
	})
}
