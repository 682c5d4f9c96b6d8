package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
	auditService   *services.AuditService
	loc            *time.Location
}

func NewExpenseHandler(expenseService *services.ExpenseService, auditService *services.AuditService, loc *time.Location) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService, loc: loc}
}

// ExpenseRequest is the create/update payload. expense_date accepts YYYY-MM-DD or RFC 3339.
type ExpenseRequest struct {
	Description        string  `json:"description"`
	Amount             int64   `json:"amount"`
	Category           string  `json:"category"`
	ExpenseDate        string  `json:"expense_date"`
	IsRecurring        bool    `json:"is_recurring"`
	RecurringFrequency *string `json:"recurring_frequency"`
	Vendor             *string `json:"vendor"`
	Notes              *string `json:"notes"`
}

func (h *ExpenseHandler) bindExpense(c *gin.Context) (*models.Expense, error) {
	var req ExpenseRequest
	if err := bindPayload(c, "expense", &req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.ExpenseDate, h.loc)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		Description:        req.Description,
		Amount:             req.Amount,
		Category:           req.Category,
		ExpenseDate:        date,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
		Vendor:             req.Vendor,
		Notes:              req.Notes,
	}, nil
}

// @Summary List Expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Description or vendor"
// @Param category query string false "Expense category"
// @Param recurring query bool false "Only recurring templates (true) or one-off entries (false)"
// @Param start_date query string false "From date (YYYY-MM-DD)"
// @Param end_date query string false "To date (YYYY-MM-DD)"
// @Param sort query string false "expense_date-desc, amount-asc, ..."
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	window, err := dateWindow(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	query := &repository.ExpenseQuery{
		ListQuery: listQuery(c),
		TenantID:  tenantOf(c),
		Category:  c.Query("category"),
		Window:    window,
	}
	if raw := c.Query("recurring"); raw != "" {
		recurring, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, fmt.Errorf("%w: recurring must be true or false", errBadRequest))
			return
		}
		query.Recurring = &recurring
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":   expenses,
		"pagination": pagination(query.ListQuery, total),
	})
}

// @Summary Create Expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} models.Expense
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	expense, err := h.bindExpense(c)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.expenseService.Create(c.Request.Context(), tenantOf(c), expense)
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionCreate, models.AuditEntityExpense, created.ID,
		fmt.Sprintf("%s %d (%s)", created.Category, created.Amount, created.Description))
	c.JSON(http.StatusCreated, created)
}

// @Summary Update Expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 200 {object} models.Expense
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{expense_id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := idParam(c, "expense_id")
	if err != nil {
		respondError(c, err)
		return
	}
	changes, err := h.bindExpense(c)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.expenseService.Update(c.Request.Context(), tenantOf(c), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionUpdate, models.AuditEntityExpense, updated.ID,
		fmt.Sprintf("%s %d (%s)", updated.Category, updated.Amount, updated.Description))
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete Expense
// @Tags Expenses
// @Param expense_id path int true "Expense ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "expense_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), tenantOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionDelete, models.AuditEntityExpense, id, "")
	c.Status(http.StatusNoContent)
}
