package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Receipt represents one billed patient transaction
type Receipt struct {
	ID             uint                          `gorm:"primaryKey" json:"id"`
	TenantID       string                        `gorm:"not null;uniqueIndex:idx_receipts_tenant_number;index:idx_receipts_tenant_date" json:"tenant_id" validate:"required"`
	ReceiptNumber  string                        `gorm:"not null;uniqueIndex:idx_receipts_tenant_number" json:"receipt_number" validate:"required,max=64"`
	ReceiptDate    time.Time                     `gorm:"not null;index:idx_receipts_tenant_date" json:"receipt_date" validate:"required"`
	TotalAmount    int64                         `gorm:"not null" json:"total_amount" validate:"gte=0"`
	DiscountAmount int64                         `gorm:"not null;default:0" json:"discount_amount" validate:"gte=0"`
	PaymentMode    string                        `gorm:"not null;default:'unpaid'" json:"payment_mode" validate:"oneof=cash upi card other unpaid"`
	IsPaid         bool                          `gorm:"not null;default:false;index" json:"is_paid"`
	PaidAt         *time.Time                    `json:"paid_at"`
	LineItems      datatypes.JSONSlice[LineItem] `gorm:"type:jsonb" json:"line_items" validate:"min=1,dive"`
	Patient        PatientSnapshot               `gorm:"embedded;embeddedPrefix:patient_" json:"patient"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `json:"updated_at"`
}

// TableName specifies the table name for Receipt
func (Receipt) TableName() string {
	return "receipts"
}

// LineItem is a single billed service on a receipt
type LineItem struct {
	Description string `json:"description" validate:"required"`
	Amount      int64  `json:"amount" validate:"gte=0"`
}

// PatientSnapshot is the patient data copied onto the receipt at checkout
type PatientSnapshot struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Payment mode constants
const (
	PaymentModeCash   = "cash"
	PaymentModeUPI    = "upi"
	PaymentModeCard   = "card"
	PaymentModeOther  = "other"
	PaymentModeUnpaid = "unpaid"
)

// ErrReceiptTotalMismatch is returned when a receipt's total does not match its line items
var ErrReceiptTotalMismatch = errors.New("receipt total does not match line items minus discount")

// LineItemsTotal returns the gross sum of all line items
func (r *Receipt) LineItemsTotal() int64 {
	var sum int64
	for _, item := range r.LineItems {
		sum += item.Amount
	}
	return sum
}

// CheckTotals verifies totalAmount = sum(lineItems) - discount and totalAmount >= 0
func (r *Receipt) CheckTotals() error {
	if r.TotalAmount < 0 {
		return fmt.Errorf("%w: total %d is negative", ErrReceiptTotalMismatch, r.TotalAmount)
	}
	if expected := r.LineItemsTotal() - r.DiscountAmount; expected != r.TotalAmount {
		return fmt.Errorf("%w: expected %d, got %d", ErrReceiptTotalMismatch, expected, r.TotalAmount)
	}
	return nil
}

// MayCollect returns true if an outstanding balance can be collected
func (r *Receipt) MayCollect() bool {
	return !r.IsPaid
}

// MayReopen returns true if a collected receipt can be marked outstanding again
func (r *Receipt) MayReopen() bool {
	return r.IsPaid
}

// Status returns the receipt's lifecycle state name
func (r *Receipt) Status() string {
	if r.IsPaid {
		return ReceiptStatusPaid
	}
	return ReceiptStatusUnpaid
}

// Receipt status constants
const (
	ReceiptStatusUnpaid = "unpaid"
	ReceiptStatusPaid   = "paid"
)

// IsCollectableMode returns true for payment modes that settle a receipt
func IsCollectableMode(mode string) bool {
	switch mode {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeOther:
		return true
	}
	return false
}
