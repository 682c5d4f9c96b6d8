package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/middleware"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

// recordAudit writes an audit entry for the authenticated user
func recordAudit(c *gin.Context, audit *services.AuditService, action, entity string, entityID uint, details string) {
	audit.Record(c.Request.Context(), models.AuditLog{
		TenantID:  tenantOf(c),
		UserID:    middleware.GetUserID(c),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Trail
// @Description Changes to receipts, expenses and budget targets, newest first
// @Tags Audits
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page (max 100)"
// @Param entity query string false "Receipt, Expense or BudgetTarget"
// @Param entity_id query int false "Entity ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := &repository.AuditQuery{
		ListQuery: listQuery(c),
		TenantID:  tenantOf(c),
		Entity:    c.Query("entity"),
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, fmt.Errorf("%w: entity_id must be a positive integer", errBadRequest))
			return
		}
		query.EntityID = uint(id)
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audits":     logs,
		"pagination": pagination(query.ListQuery, total),
	})
}
