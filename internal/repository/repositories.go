package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Receipt ReceiptRepository
	Expense ExpenseRepository
	Budget  BudgetRepository
	Audit   AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Receipt: NewReceiptRepository(db),
		Expense: NewExpenseRepository(db),
		Budget:  NewBudgetRepository(db),
		Audit:   NewAuditRepository(db),
	}
}
