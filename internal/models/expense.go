package models

import (
	"time"
)

// Expense represents one clinic operating cost entry
type Expense struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	TenantID           string     `gorm:"not null;index:idx_expenses_tenant_date" json:"tenant_id" validate:"required"`
	Description        string     `gorm:"not null" json:"description" validate:"required"`
	Amount             int64      `gorm:"not null" json:"amount" validate:"gt=0"`
	Category           string     `gorm:"not null;index" json:"category" validate:"required,expense_category"`
	ExpenseDate        time.Time  `gorm:"not null;index:idx_expenses_tenant_date" json:"expense_date" validate:"required"`
	IsRecurring        bool       `gorm:"not null;default:false" json:"is_recurring"`
	RecurringFrequency *string    `json:"recurring_frequency" validate:"omitempty,oneof=monthly quarterly yearly"`
	Vendor             *string    `json:"vendor"`
	Notes              *string    `gorm:"type:text" json:"notes"`
	RecurringSourceID  *uint      `gorm:"index" json:"recurring_source_id,omitempty"`
	LastPostedAt       *time.Time `json:"last_posted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Expense category constants
const (
	ExpenseCategoryRent        = "rent"
	ExpenseCategorySalary      = "salary"
	ExpenseCategorySupplies    = "supplies"
	ExpenseCategoryUtilities   = "utilities"
	ExpenseCategoryEquipment   = "equipment"
	ExpenseCategoryMaintenance = "maintenance"
	ExpenseCategoryMarketing   = "marketing"
	ExpenseCategoryInsurance   = "insurance"
	ExpenseCategoryTaxes       = "taxes"
	ExpenseCategoryOther       = "other"
)

// ExpenseCategories lists the closed set of expense categories
var ExpenseCategories = []string{
	ExpenseCategoryRent,
	ExpenseCategorySalary,
	ExpenseCategorySupplies,
	ExpenseCategoryUtilities,
	ExpenseCategoryEquipment,
	ExpenseCategoryMaintenance,
	ExpenseCategoryMarketing,
	ExpenseCategoryInsurance,
	ExpenseCategoryTaxes,
	ExpenseCategoryOther,
}

// IsExpenseCategory reports whether c belongs to the closed category set
func IsExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Recurrence frequency constants
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// NextOccurrence returns the date of the occurrence following from for a recurring expense.
// Returns false when the expense is not recurring or the frequency is unknown.
func (e *Expense) NextOccurrence(from time.Time) (time.Time, bool) {
	if !e.IsRecurring || e.RecurringFrequency == nil {
		return time.Time{}, false
	}
	switch *e.RecurringFrequency {
	case FrequencyMonthly:
		return addMonthsClamped(from, 1), true
	case FrequencyQuarterly:
		return addMonthsClamped(from, 3), true
	case FrequencyYearly:
		return addMonthsClamped(from, 12), true
	}
	return time.Time{}, false
}

// addMonthsClamped adds months keeping the day inside the target month (Jan 31 + 1 month = Feb 28/29)
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
