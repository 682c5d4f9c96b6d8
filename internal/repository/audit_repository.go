package repository

import (
	"context"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines the interface for audit trail data access
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, query *AuditQuery) ([]models.AuditLog, int64, error)
}

// AuditQuery lists a tenant's audit trail, newest first
type AuditQuery struct {
	*ListQuery
	TenantID string
	Entity   string
	EntityID uint
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, query *AuditQuery) ([]models.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.AuditLog{}).Where("tenant_id = ?", query.TenantID)
	if query.Entity != "" {
		db = db.Where("entity = ?", query.Entity)
	}
	if query.EntityID != 0 {
		db = db.Where("entity_id = ?", query.EntityID)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := query.paginate(db).Order("created_at DESC").Order("id DESC").Find(&logs).Error
	return logs, total, err
}
