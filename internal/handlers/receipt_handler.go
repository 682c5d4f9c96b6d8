package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type ReceiptHandler struct {
	receiptService *services.ReceiptService
	auditService   *services.AuditService
	loc            *time.Location
}

func NewReceiptHandler(receiptService *services.ReceiptService, auditService *services.AuditService, loc *time.Location) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, auditService: auditService, loc: loc}
}

// ReceiptRequest is the checkout payload. receipt_date accepts YYYY-MM-DD or RFC 3339.
type ReceiptRequest struct {
	ReceiptNumber  string                 `json:"receipt_number"`
	ReceiptDate    string                 `json:"receipt_date"`
	LineItems      []models.LineItem      `json:"line_items"`
	DiscountAmount int64                  `json:"discount_amount"`
	TotalAmount    int64                  `json:"total_amount"`
	PaymentMode    string                 `json:"payment_mode"`
	Patient        models.PatientSnapshot `json:"patient"`
}

// CollectRequest settles an outstanding receipt
type CollectRequest struct {
	PaymentMode string `json:"payment_mode"`
}

// @Summary List Receipts
// @Description List the clinic's receipts with filters and paging
// @Tags Receipts
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Receipt number, patient name or phone"
// @Param status query string false "paid or unpaid"
// @Param payment_mode query string false "cash, upi, card, other or unpaid"
// @Param start_date query string false "From date (YYYY-MM-DD)"
// @Param end_date query string false "To date (YYYY-MM-DD)"
// @Param sort query string false "receipt_date-desc, total_amount-asc, ..."
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts [get]
func (h *ReceiptHandler) Index(c *gin.Context) {
	window, err := dateWindow(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	query := &repository.ReceiptQuery{
		ListQuery:   listQuery(c),
		TenantID:    tenantOf(c),
		Status:      c.Query("status"),
		PaymentMode: c.Query("payment_mode"),
		Window:      window,
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipts":   receipts,
		"pagination": pagination(query.ListQuery, total),
	})
}

// @Summary Get Receipt
// @Tags Receipts
// @Produce json
// @Param receipt_id path int true "Receipt ID"
// @Success 200 {object} models.Receipt
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id} [get]
func (h *ReceiptHandler) Show(c *gin.Context) {
	id, err := idParam(c, "receipt_id")
	if err != nil {
		respondError(c, err)
		return
	}
	receipt, err := h.receiptService.Get(c.Request.Context(), tenantOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// @Summary Create Receipt
// @Description Record a checkout. A settling payment mode stores the receipt as paid.
// @Tags Receipts
// @Accept json
// @Produce json
// @Param request body ReceiptRequest true "Receipt"
// @Success 201 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req ReceiptRequest
	if err := bindPayload(c, "receipt", &req); err != nil {
		respondError(c, err)
		return
	}

	date, err := parseDate(req.ReceiptDate, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), tenantOf(c), &models.Receipt{
		ReceiptNumber:  req.ReceiptNumber,
		ReceiptDate:    date,
		LineItems:      req.LineItems,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    req.TotalAmount,
		PaymentMode:    req.PaymentMode,
		Patient:        req.Patient,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionCreate, models.AuditEntityReceipt, receipt.ID,
		fmt.Sprintf("receipt %s total %d mode %s", receipt.ReceiptNumber, receipt.TotalAmount, receipt.PaymentMode))
	c.JSON(http.StatusCreated, receipt)
}

// @Summary Collect Receipt
// @Description Settle an outstanding receipt
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receipt_id path int true "Receipt ID"
// @Param request body CollectRequest true "Payment mode"
// @Success 200 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/collect [post]
func (h *ReceiptHandler) Collect(c *gin.Context) {
	id, err := idParam(c, "receipt_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req CollectRequest
	if err := bindPayload(c, "receipt", &req); err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.receiptService.Collect(c.Request.Context(), tenantOf(c), id, req.PaymentMode)
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionCollect, models.AuditEntityReceipt, receipt.ID,
		fmt.Sprintf("collected %d via %s", receipt.TotalAmount, receipt.PaymentMode))
	c.JSON(http.StatusOK, receipt)
}

// @Summary Reopen Receipt
// @Description Return a collected receipt to the outstanding balance
// @Tags Receipts
// @Produce json
// @Param receipt_id path int true "Receipt ID"
// @Success 200 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/reopen [post]
func (h *ReceiptHandler) Reopen(c *gin.Context) {
	id, err := idParam(c, "receipt_id")
	if err != nil {
		respondError(c, err)
		return
	}
	receipt, err := h.receiptService.Reopen(c.Request.Context(), tenantOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionReopen, models.AuditEntityReceipt, receipt.ID,
		fmt.Sprintf("reopened %d", receipt.TotalAmount))
	c.JSON(http.StatusOK, receipt)
}
