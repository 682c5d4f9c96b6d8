package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/clinic-billing-api/internal/config"
	"github.com/sjperalta/clinic-billing-api/internal/jobs"
	"github.com/sjperalta/clinic-billing-api/internal/middleware"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

type testAPI struct {
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Receipt{}, &models.Expense{}, &models.BudgetTarget{}, &models.AuditLog{}))

	worker := jobs.NewWorker(1, time.UTC)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{ReportLocation: time.UTC, ReportTimeout: 5 * time.Second}
	svcs := services.NewServices(repository.NewRepositories(db), worker, cfg)

	router := gin.New()
	router.Use(middleware.RequestLogger())
	NewHandlers(svcs, cfg.ReportLocation).RegisterRoutes(router.Group("/api/v1"), middleware.Auth(testSecret))
	return &testAPI{router: router}
}

func tokenFor(t *testing.T, clinicID, role string) string {
	t.Helper()
	signed, err := middleware.GenerateToken(middleware.Claims{
		UserID:   1,
		ClinicID: clinicID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)
	require.NoError(t, err)
	return signed
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func receiptBody(number, mode string) gin.H {
	return gin.H{
		"receipt_number":  number,
		"receipt_date":    "2024-03-01",
		"line_items":      []gin.H{{"description": "Consultation", "amount": 500}, {"description": "Dressing", "amount": 100}},
		"discount_amount": 50,
		"total_amount":    550,
		"payment_mode":    mode,
		"patient":         gin.H{"name": "Ravi Kumar", "phone": "9800000000"},
	}
}

func TestHealthIsPublic(t *testing.T) {
	api := newTestAPI(t)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/health", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/reports", nil, "").Code)
}

func TestReceiptLifecycle(t *testing.T) {
	api := newTestAPI(t)
	staff := tokenFor(t, "clinic-1", middleware.RoleStaff)

	w := api.do(t, http.MethodPost, "/receipts", receiptBody("R-1", "unpaid"), staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Receipt
	decode(t, w, &created)
	assert.False(t, created.IsPaid)

	w = api.do(t, http.MethodPost, "/receipts", receiptBody("R-1", "cash"), staff)
	assert.Equal(t, http.StatusConflict, w.Code)

	mismatch := receiptBody("R-2", "cash")
	mismatch["total_amount"] = 600
	w = api.do(t, http.MethodPost, "/receipts", mismatch, staff)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	badDate := receiptBody("R-3", "cash")
	badDate["receipt_date"] = "01/03/2024"
	w = api.do(t, http.MethodPost, "/receipts", badDate, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/receipts/%d", created.ID)
	w = api.do(t, http.MethodPost, path+"/collect", gin.H{"payment_mode": "upi"}, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var collected models.Receipt
	decode(t, w, &collected)
	assert.True(t, collected.IsPaid)
	assert.Equal(t, models.PaymentModeUPI, collected.PaymentMode)

	w = api.do(t, http.MethodPost, path+"/collect", gin.H{"payment_mode": "cash"}, staff)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, path+"/reopen", nil, staff)
	assert.Equal(t, http.StatusOK, w.Code)

	// another clinic cannot see the receipt
	w = api.do(t, http.MethodGet, path, nil, tokenFor(t, "clinic-2", middleware.RoleStaff))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/receipts?status=unpaid&search=ravi", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Receipts   []models.Receipt `json:"receipts"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, w, &listed)
	assert.Equal(t, int64(1), listed.Pagination.Total)
	assert.Equal(t, "R-1", listed.Receipts[0].ReceiptNumber)

	w = api.do(t, http.MethodGet, fmt.Sprintf("/audits?entity=Receipt&entity_id=%d", created.ID), nil, tokenFor(t, "clinic-1", middleware.RoleOwner))
	require.Equal(t, http.StatusOK, w.Code)
	var audits struct {
		Audits []models.AuditLog `json:"audits"`
	}
	decode(t, w, &audits)
	require.Len(t, audits.Audits, 3)
	actions := []string{audits.Audits[0].Action, audits.Audits[1].Action, audits.Audits[2].Action}
	assert.ElementsMatch(t, []string{models.AuditActionCreate, models.AuditActionCollect, models.AuditActionReopen}, actions)
}

func TestReportEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := tokenFor(t, "clinic-1", middleware.RoleOwner)

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/receipts", receiptBody("R-1", "cash"), owner).Code)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPut, "/budget_targets/2024/3", gin.H{"target_revenue": 1100}, owner).Code)

	w := api.do(t, http.MethodGet, "/reports?type=monthly&year=2024&month=3", nil, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report models.Report
	decode(t, w, &report)
	assert.Equal(t, "2024-03", report.Period.Label)
	assert.Equal(t, int64(550), report.Revenue.Collected)
	require.NotNil(t, report.Budget)
	assert.Equal(t, int64(50), report.Budget.Achieved)
	assert.Len(t, report.DailyCollection, 31)

	w = api.do(t, http.MethodGet, "/reports?type=monthly&year=2024&month=4", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"budget":null`)

	for _, query := range []string{"type=monthly&year=2024&month=13", "year=abc", "type=weekly&year=2024&month=3"} {
		w = api.do(t, http.MethodGet, "/reports?"+query, nil, owner)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	w = api.do(t, http.MethodGet, "/reports/export?format=csv&type=monthly&year=2024&month=3", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=clinic_report_2024-03.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Revenue Summary")

	w = api.do(t, http.MethodGet, "/reports/export?format=docx&year=2024&month=3", nil, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/analytics?year=2024&month=3&months_back=3", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	var bundle models.AnalyticsBundle
	decode(t, w, &bundle)
	assert.Len(t, bundle.Trend, 3)

	w = api.do(t, http.MethodGet, "/analytics?year=2024&month=3&months_back=30", nil, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBudgetTargetsRequireManager(t *testing.T) {
	api := newTestAPI(t)
	staff := tokenFor(t, "clinic-1", middleware.RoleStaff)
	owner := tokenFor(t, "clinic-1", middleware.RoleOwner)

	w := api.do(t, http.MethodPut, "/budget_targets/2024/3", gin.H{"target_revenue": 1000}, staff)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPut, "/budget_targets/2024", gin.H{"months": []gin.H{
		{"month": 1, "target_revenue": 1000},
		{"month": 2, "target_revenue": 2000, "target_expenses": 800},
	}}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodPut, "/budget_targets/2024/13", gin.H{"target_revenue": 1000}, owner)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodGet, "/budget_targets?year=2024", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		BudgetTargets []models.BudgetTarget `json:"budget_targets"`
	}
	decode(t, w, &listed)
	require.Len(t, listed.BudgetTargets, 2)
	assert.Equal(t, 1, listed.BudgetTargets[0].Month)
}

func TestExpenseEndpoints(t *testing.T) {
	api := newTestAPI(t)
	staff := tokenFor(t, "clinic-1", middleware.RoleStaff)

	w := api.do(t, http.MethodPost, "/expenses", gin.H{
		"description":         "Rent",
		"amount":              20000,
		"category":            "rent",
		"expense_date":        "2024-03-01",
		"is_recurring":        true,
		"recurring_frequency": "monthly",
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Expense
	decode(t, w, &created)

	w = api.do(t, http.MethodPost, "/expenses", gin.H{
		"description": "Rent", "amount": 100, "category": "rent", "expense_date": "2024-03-01", "is_recurring": true,
	}, staff)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	path := fmt.Sprintf("/expenses/%d", created.ID)
	w = api.do(t, http.MethodPut, path, gin.H{
		"description": "Rent", "amount": 21000, "category": "rent", "expense_date": "2024-03-01",
	}, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/expenses?category=rent&start_date=2024-03-01&end_date=2024-03-31", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":21000`)

	w = api.do(t, http.MethodGet, "/expenses?recurring=maybe", nil, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, path, nil, staff).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, path, nil, staff).Code)
}

func TestJobEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := tokenFor(t, "clinic-1", middleware.RoleOwner)

	w := api.do(t, http.MethodPost, "/jobs/recurring_expenses/run", nil, owner)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = api.do(t, http.MethodGet, "/jobs/status", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scheduled_count")

	w = api.do(t, http.MethodGet, "/jobs/status", nil, tokenFor(t, "clinic-1", middleware.RoleStaff))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errorStatus(services.ErrNotFound))
	assert.Equal(t, http.StatusConflict, errorStatus(fmt.Errorf("wrapped: %w", services.ErrDuplicate)))
	assert.Equal(t, http.StatusUnprocessableEntity, errorStatus(services.ErrValidation))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(fmt.Errorf("connection refused")))
}
