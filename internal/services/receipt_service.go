package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/internal/statemachine"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
	"gorm.io/gorm"
)

type ReceiptService struct {
	repo repository.ReceiptRepository
	now  func() time.Time
}

func NewReceiptService(repo repository.ReceiptRepository) *ReceiptService {
	return &ReceiptService{repo: repo, now: time.Now}
}

// Create stores a new receipt for the tenant. A receipt created with a settling payment mode
// is stored paid; an empty mode means unpaid. The total must equal line items minus discount.
func (s *ReceiptService) Create(ctx context.Context, tenantID string, receipt *models.Receipt) (*models.Receipt, error) {
	receipt.ID = 0
	receipt.TenantID = tenantID
	receipt.ReceiptNumber = strings.TrimSpace(receipt.ReceiptNumber)
	if receipt.PaymentMode == "" {
		receipt.PaymentMode = models.PaymentModeUnpaid
	}
	receipt.IsPaid = models.IsCollectableMode(receipt.PaymentMode)
	receipt.PaidAt = nil
	if receipt.IsPaid {
		paidAt := receipt.ReceiptDate
		receipt.PaidAt = &paidAt
	}

	if err := validateStruct(receipt); err != nil {
		return nil, err
	}
	if err := receipt.CheckTotals(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.repo.FindByNumber(ctx, tenantID, receipt.ReceiptNumber); err == nil {
		return nil, fmt.Errorf("%w: receipt number %s already exists", ErrDuplicate, receipt.ReceiptNumber)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: receipt number %s already exists", ErrDuplicate, receipt.ReceiptNumber)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("Receipt created",
		"receipt_id", receipt.ID, "receipt_number", receipt.ReceiptNumber, "total", receipt.TotalAmount, "paid", receipt.IsPaid)
	return receipt, nil
}

func (s *ReceiptService) Get(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
	receipt, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return receipt, nil
}

func (s *ReceiptService) List(ctx context.Context, query *repository.ReceiptQuery) ([]models.Receipt, int64, error) {
	return s.repo.List(ctx, query)
}

// Collect settles an unpaid receipt with the given payment mode
func (s *ReceiptService) Collect(ctx context.Context, tenantID string, id uint, mode string) (*models.Receipt, error) {
	receipt, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !receipt.MayCollect() {
		return nil, ErrInvalidState
	}
	if !models.IsCollectableMode(mode) {
		return nil, fmt.Errorf("%w: payment mode must be one of cash, upi, card, other", ErrValidation)
	}

	if err := statemachine.NewReceiptFSM(receipt).Collect(ctx, mode, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.repo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Receipt collected", "receipt_id", receipt.ID, "mode", mode, "amount", receipt.TotalAmount)
	return receipt, nil
}

// Reopen reverses a collection, returning the receipt to the outstanding balance
func (s *ReceiptService) Reopen(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
	receipt, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !receipt.MayReopen() {
		return nil, ErrInvalidState
	}

	if err := statemachine.NewReceiptFSM(receipt).Reopen(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.repo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Warn("Receipt reopened", "receipt_id", receipt.ID, "amount", receipt.TotalAmount)
	return receipt, nil
}
