package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Get statistics about background jobs (active, completed, failed, queue length, scheduled)
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()
	c.JSON(http.StatusOK, status)
}

// RunRecurringExpenses queues an immediate recurring expense posting run
// @Summary Post recurring expenses now
// @Description Queue a run that posts every recurring expense occurrence due today
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Router /jobs/recurring_expenses/run [post]
func (h *JobHandler) RunRecurringExpenses(c *gin.Context) {
	h.jobService.TriggerRecurringExpenses()
	c.JSON(http.StatusAccepted, gin.H{"message": "Recurring expense posting queued"})
}
