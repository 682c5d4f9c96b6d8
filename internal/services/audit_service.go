package services

import (
	"context"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record stores an audit entry. The change it describes has already been committed, so a
// failure here is logged and not returned.
func (s *AuditService) Record(ctx context.Context, entry models.AuditLog) {
	if err := s.repo.Create(ctx, &entry); err != nil {
		logger.FromContext(ctx).Error("Failed to record audit entry",
			"action", entry.Action, "entity", entry.Entity, "entity_id", entry.EntityID, "error", err)
	}
}

// List retrieves the tenant's audit trail, newest first
func (s *AuditService) List(ctx context.Context, query *repository.AuditQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
