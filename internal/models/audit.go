package models

import (
	"time"
)

// AuditLog records who changed a billing record and how
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  string    `gorm:"not null;index:idx_audit_logs_tenant_created" json:"tenant_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Entity    string    `gorm:"size:50;not null" json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index:idx_audit_logs_tenant_created" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionDelete  = "DELETE"
	AuditActionCollect = "COLLECT"
	AuditActionReopen  = "REOPEN"
)

// Audited entities
const (
	AuditEntityReceipt = "Receipt"
	AuditEntityExpense = "Expense"
	AuditEntityBudget  = "BudgetTarget"
)
