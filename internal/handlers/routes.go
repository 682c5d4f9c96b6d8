package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/middleware"
)

// RegisterRoutes mounts the API on v1. auth must authenticate the request and set the tenant.
func (h *Handlers) RegisterRoutes(v1 *gin.RouterGroup, auth gin.HandlerFunc) {
	// Health check (public)
	v1.GET("/health", h.Health.Index)

	protected := v1.Group("")
	protected.Use(auth)
	{
		// Reports and analytics
		protected.GET("/reports", h.Report.Show)
		protected.GET("/reports/export", h.Report.Export)
		protected.GET("/analytics", h.Analytics.Index)

		// Receipts
		protected.GET("/receipts", h.Receipt.Index)
		protected.POST("/receipts", h.Receipt.Create)
		protected.GET("/receipts/:receipt_id", h.Receipt.Show)
		protected.POST("/receipts/:receipt_id/collect", h.Receipt.Collect)
		protected.POST("/receipts/:receipt_id/reopen", h.Receipt.Reopen)

		// Expenses
		protected.GET("/expenses", h.Expense.Index)
		protected.POST("/expenses", h.Expense.Create)
		protected.PUT("/expenses/:expense_id", h.Expense.Update)
		protected.DELETE("/expenses/:expense_id", h.Expense.Delete)

		// Budget targets (reading is open to staff, setting is not)
		protected.GET("/budget_targets", h.Budget.Index)

		managers := protected.Group("")
		managers.Use(middleware.RequireRole(middleware.RoleOwner, middleware.RoleAdmin))
		{
			managers.PUT("/budget_targets/:year", h.Budget.UpdateYear)
			managers.PUT("/budget_targets/:year/:month", h.Budget.UpdateMonth)

			managers.GET("/jobs/status", h.Job.Status)
			managers.POST("/jobs/recurring_expenses/run", h.Job.RunRecurringExpenses)

			managers.GET("/audits", h.Audit.Index)
		}
	}
}
