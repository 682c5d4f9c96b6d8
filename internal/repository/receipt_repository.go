package repository

import (
	"context"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"gorm.io/gorm"
)

// ReceiptRepository defines the interface for receipt data access
type ReceiptRepository interface {
	FindByID(ctx context.Context, tenantID string, id uint) (*models.Receipt, error)
	FindByNumber(ctx context.Context, tenantID, number string) (*models.Receipt, error)
	Create(ctx context.Context, receipt *models.Receipt) error
	Update(ctx context.Context, receipt *models.Receipt) error
	List(ctx context.Context, query *ReceiptQuery) ([]models.Receipt, int64, error)
	FindInRange(ctx context.Context, tenantID string, start, end time.Time) ([]models.Receipt, error)
}

// ReceiptQuery extends ListQuery with receipt-specific filters
type ReceiptQuery struct {
	*ListQuery
	TenantID    string
	Status      string
	PaymentMode string
	Window      DateWindow
}

var receiptSortColumns = map[string]string{
	"receipt_date":   "receipts.receipt_date",
	"receipt_number": "receipts.receipt_number",
	"total_amount":   "receipts.total_amount",
	"created_at":     "receipts.created_at",
}

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) FindByID(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&receipt, id).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) FindByNumber(ctx context.Context, tenantID, number string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND receipt_number = ?", tenantID, number).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) Update(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) List(ctx context.Context, query *ReceiptQuery) ([]models.Receipt, int64, error) {
	var receipts []models.Receipt
	var total int64

	if query.ListQuery == nil {
		query.ListQuery = NewListQuery()
	}

	db := r.db.WithContext(ctx).Model(&models.Receipt{}).
		Where("receipts.tenant_id = ?", query.TenantID)

	switch query.Status {
	case models.ReceiptStatusPaid:
		db = db.Where("receipts.is_paid = ?", true)
	case models.ReceiptStatusUnpaid:
		db = db.Where("receipts.is_paid = ?", false)
	}
	if query.PaymentMode != "" {
		db = db.Where("receipts.payment_mode = ?", query.PaymentMode)
	}
	db = query.Window.apply(db, "receipts.receipt_date")

	if query.Search != "" {
		term := likePattern(query.Search)
		db = db.Where("(LOWER(receipts.receipt_number) LIKE ? OR LOWER(receipts.patient_name) LIKE ? OR receipts.patient_phone LIKE ?)",
			term, term, term)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order(query.order(receiptSortColumns, "receipts.receipt_date DESC")).Order("receipts.id DESC")
	err := query.paginate(db).Find(&receipts).Error

	return receipts, total, err
}

// FindInRange returns every receipt of the tenant dated within [start, end], oldest first
func (r *receiptRepository) FindInRange(ctx context.Context, tenantID string, start, end time.Time) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND receipt_date >= ? AND receipt_date <= ?", tenantID, start, end).
		Order("receipt_date ASC, id ASC").
		Find(&receipts).Error
	return receipts, err
}
