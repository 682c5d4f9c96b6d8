package services

import (
	"context"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/jobs"
)

const recurringExpensesJob = "recurring-expenses"

type JobService struct {
	worker   *jobs.Worker
	expenses *ExpenseService
	loc      *time.Location
	now      func() time.Time
}

func NewJobService(worker *jobs.Worker, expenses *ExpenseService, loc *time.Location) *JobService {
	if loc == nil {
		loc = time.UTC
	}
	return &JobService{
		worker:   worker,
		expenses: expenses,
		loc:      loc,
		now:      time.Now,
	}
}

// ScheduleRecurringExpenses registers the recurring expense poster on a cron expression
func (s *JobService) ScheduleRecurringExpenses(spec string) error {
	return s.worker.ScheduleCron(recurringExpensesJob, spec, s.postRecurring)
}

// TriggerRecurringExpenses queues an immediate posting run
func (s *JobService) TriggerRecurringExpenses() {
	s.worker.Enqueue(s.postRecurring)
}

func (s *JobService) postRecurring(ctx context.Context) error {
	_, err := s.expenses.PostRecurring(ctx, s.now().In(s.loc))
	return err
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":     stats.ActiveJobs,
		"completed_jobs":  stats.CompletedJobs,
		"failed_jobs":     stats.FailedJobs,
		"queue_length":    stats.QueueLength,
		"scheduled_count": stats.ScheduledCount,
	}
}
