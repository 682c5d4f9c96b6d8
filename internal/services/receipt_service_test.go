package services

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock ReceiptRepository
type mockReceiptRepository struct {
	repository.ReceiptRepository
	mockFindByID     func(ctx context.Context, tenantID string, id uint) (*models.Receipt, error)
	mockFindByNumber func(ctx context.Context, tenantID, number string) (*models.Receipt, error)
	created          []*models.Receipt
	updated          []*models.Receipt
}

func (m *mockReceiptRepository) FindByID(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepository) FindByNumber(ctx context.Context, tenantID, number string) (*models.Receipt, error) {
	if m.mockFindByNumber != nil {
		return m.mockFindByNumber(ctx, tenantID, number)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	receipt.ID = uint(len(m.created) + 1)
	m.created = append(m.created, receipt)
	return nil
}

func (m *mockReceiptRepository) Update(ctx context.Context, receipt *models.Receipt) error {
	m.updated = append(m.updated, receipt)
	return nil
}

func newReceipt(mode string) *models.Receipt {
	return &models.Receipt{
		ReceiptNumber:  " R-100 ",
		ReceiptDate:    time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
		LineItems:      []models.LineItem{{Description: "Consultation", Amount: 500}, {Description: "Dressing", Amount: 100}},
		DiscountAmount: 50,
		TotalAmount:    550,
		PaymentMode:    mode,
		Patient:        models.PatientSnapshot{Name: "Ravi Kumar"},
	}
}

func TestReceiptServiceCreatePaid(t *testing.T) {
	repo := &mockReceiptRepository{}
	svc := NewReceiptService(repo)

	receipt, err := svc.Create(context.Background(), "clinic-1", newReceipt(models.PaymentModeCash))
	require.NoError(t, err)

	assert.Equal(t, "clinic-1", receipt.TenantID)
	assert.Equal(t, "R-100", receipt.ReceiptNumber)
	assert.True(t, receipt.IsPaid)
	require.NotNil(t, receipt.PaidAt)
	assert.Equal(t, receipt.ReceiptDate, *receipt.PaidAt)
	assert.Len(t, repo.created, 1)
}

func TestReceiptServiceCreateDefaultsToUnpaid(t *testing.T) {
	svc := NewReceiptService(&mockReceiptRepository{})

	receipt, err := svc.Create(context.Background(), "clinic-1", newReceipt(""))
	require.NoError(t, err)

	assert.False(t, receipt.IsPaid)
	assert.Equal(t, models.PaymentModeUnpaid, receipt.PaymentMode)
	assert.Nil(t, receipt.PaidAt)
}

func TestReceiptServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Receipt)
	}{
		{"total mismatch", func(r *models.Receipt) { r.TotalAmount = 600 }},
		{"negative total", func(r *models.Receipt) { r.DiscountAmount = 700; r.TotalAmount = -100 }},
		{"no line items", func(r *models.Receipt) { r.LineItems = nil; r.DiscountAmount = 0; r.TotalAmount = 0 }},
		{"missing number", func(r *models.Receipt) { r.ReceiptNumber = "  " }},
		{"unknown mode", func(r *models.Receipt) { r.PaymentMode = "cheque" }},
		{"line item without description", func(r *models.Receipt) { r.LineItems[0].Description = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReceiptRepository{}
			r := newReceipt(models.PaymentModeCash)
			tt.mutate(r)

			_, err := NewReceiptService(repo).Create(context.Background(), "clinic-1", r)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, repo.created)
		})
	}
}

func TestReceiptServiceCreateDuplicateNumber(t *testing.T) {
	repo := &mockReceiptRepository{
		mockFindByNumber: func(ctx context.Context, tenantID, number string) (*models.Receipt, error) {
			return &models.Receipt{ID: 7, TenantID: tenantID, ReceiptNumber: number}, nil
		},
	}

	_, err := NewReceiptService(repo).Create(context.Background(), "clinic-1", newReceipt(models.PaymentModeCash))

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Empty(t, repo.created)
}

func TestReceiptServiceCollect(t *testing.T) {
	stored := &models.Receipt{ID: 3, TenantID: "clinic-1", TotalAmount: 550, PaymentMode: models.PaymentModeUnpaid}
	repo := &mockReceiptRepository{
		mockFindByID: func(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
			return stored, nil
		},
	}
	svc := NewReceiptService(repo)
	fixed := time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Collect(context.Background(), "clinic-1", 3, models.PaymentModeUnpaid)
	assert.ErrorIs(t, err, ErrValidation)

	receipt, err := svc.Collect(context.Background(), "clinic-1", 3, models.PaymentModeCard)
	require.NoError(t, err)
	assert.True(t, receipt.IsPaid)
	assert.Equal(t, models.PaymentModeCard, receipt.PaymentMode)
	assert.Equal(t, fixed, *receipt.PaidAt)
	assert.Len(t, repo.updated, 1)

	_, err = svc.Collect(context.Background(), "clinic-1", 3, models.PaymentModeCash)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReceiptServiceReopen(t *testing.T) {
	paidAt := time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)
	stored := &models.Receipt{ID: 3, TenantID: "clinic-1", IsPaid: true, PaymentMode: models.PaymentModeUPI, PaidAt: &paidAt}
	repo := &mockReceiptRepository{
		mockFindByID: func(ctx context.Context, tenantID string, id uint) (*models.Receipt, error) {
			return stored, nil
		},
	}
	svc := NewReceiptService(repo)

	receipt, err := svc.Reopen(context.Background(), "clinic-1", 3)
	require.NoError(t, err)
	assert.False(t, receipt.IsPaid)
	assert.Equal(t, models.PaymentModeUnpaid, receipt.PaymentMode)
	assert.Nil(t, receipt.PaidAt)

	_, err = svc.Reopen(context.Background(), "clinic-1", 3)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReceiptServiceGetNotFound(t *testing.T) {
	_, err := NewReceiptService(&mockReceiptRepository{}).Get(context.Background(), "clinic-1", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
