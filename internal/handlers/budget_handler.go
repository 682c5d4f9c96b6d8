package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type BudgetHandler struct {
	budgetService *services.BudgetService
	auditService  *services.AuditService
}

func NewBudgetHandler(budgetService *services.BudgetService, auditService *services.AuditService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetMonthRequest sets one month's targets
type BudgetMonthRequest struct {
	TargetRevenue  int64   `json:"target_revenue"`
	TargetExpenses *int64  `json:"target_expenses"`
	Notes          *string `json:"notes"`
}

// BudgetYearRequest sets several months at once
type BudgetYearRequest struct {
	Months []services.MonthTarget `json:"months"`
}

// @Summary List Budget Targets
// @Description Configured monthly targets of a year; months without a target are absent
// @Tags Budget
// @Produce json
// @Param year query int true "Year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /budget_targets [get]
func (h *BudgetHandler) Index(c *gin.Context) {
	year, err := intQuery(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	targets, err := h.budgetService.ListYear(c.Request.Context(), tenantOf(c), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "budget_targets": targets})
}

// @Summary Set Monthly Budget Target
// @Tags Budget
// @Accept json
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param request body BudgetMonthRequest true "Targets"
// @Success 200 {object} models.BudgetTarget
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /budget_targets/{year}/{month} [put]
func (h *BudgetHandler) UpdateMonth(c *gin.Context) {
	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	month, err := intParam(c, "month")
	if err != nil {
		respondError(c, err)
		return
	}

	var req BudgetMonthRequest
	if err := bindPayload(c, "budget_target", &req); err != nil {
		respondError(c, err)
		return
	}

	target, err := h.budgetService.SetMonth(c.Request.Context(), tenantOf(c), year, services.MonthTarget{
		Month:          month,
		TargetRevenue:  req.TargetRevenue,
		TargetExpenses: req.TargetExpenses,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionUpdate, models.AuditEntityBudget, target.ID,
		fmt.Sprintf("%d-%02d target revenue %d", year, month, target.TargetRevenue))
	c.JSON(http.StatusOK, target)
}

// @Summary Set Yearly Budget Targets
// @Description Replace several months in one transaction; a month may appear once
// @Tags Budget
// @Accept json
// @Produce json
// @Param year path int true "Year"
// @Param request body BudgetYearRequest true "Monthly targets"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /budget_targets/{year} [put]
func (h *BudgetHandler) UpdateYear(c *gin.Context) {
	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}

	var req BudgetYearRequest
	if err := bindPayload(c, "budget", &req); err != nil {
		respondError(c, err)
		return
	}

	targets, err := h.budgetService.SetYear(c.Request.Context(), tenantOf(c), year, req.Months)
	if err != nil {
		respondError(c, err)
		return
	}
	recordAudit(c, h.auditService, models.AuditActionUpdate, models.AuditEntityBudget, 0,
		fmt.Sprintf("%d targets for %d months", year, len(targets)))
	c.JSON(http.StatusOK, gin.H{"year": year, "budget_targets": targets})
}
