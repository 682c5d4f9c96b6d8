package models

import (
	"time"
)

// BudgetTarget represents a tenant's revenue goal for a given year and month
type BudgetTarget struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TenantID       string    `gorm:"not null;uniqueIndex:idx_budget_targets_tenant_period" json:"tenant_id" validate:"required"`
	Year           int       `gorm:"not null;uniqueIndex:idx_budget_targets_tenant_period" json:"year" validate:"gt=0"`
	Month          int       `gorm:"not null;uniqueIndex:idx_budget_targets_tenant_period" json:"month" validate:"min=1,max=12"`
	TargetRevenue  int64     `gorm:"not null" json:"target_revenue" validate:"gte=0"`
	TargetExpenses *int64    `json:"target_expenses" validate:"omitempty,gte=0"`
	Notes          *string   `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for BudgetTarget
func (BudgetTarget) TableName() string {
	return "budget_targets"
}
