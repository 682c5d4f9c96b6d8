package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sjperalta/clinic-billing-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan Job
	cron    *cron.Cron
	stats   WorkerStats
	statsMu sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs     int   `json:"active_jobs"`
	CompletedJobs  int64 `json:"completed_jobs"`
	FailedJobs     int64 `json:"failed_jobs"`
	QueueLength    int   `json:"queue_length"`
	ScheduledCount int   `json:"scheduled_count"`
}

// NewWorker creates a worker with N concurrent processors. Cron schedules are evaluated in loc (UTC when nil).
func NewWorker(numWorkers int, loc *time.Location) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 100),
		cron:   cron.New(cron.WithLocation(loc)),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}
	w.cron.Start()

	return w
}

// Enqueue adds a job to be processed by the worker pool
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		w.run("sync", job)
	}
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("worker-%d", workerID), job)
		}
	}
}

// ScheduleCron registers a job on a standard five-field cron expression ("0 2 * * *" = daily at 02:00)
func (w *Worker) ScheduleCron(name, spec string, job Job) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	w.cron.Schedule(schedule, cron.FuncJob(func() {
		w.run(name, job)
	}))

	w.statsMu.Lock()
	w.stats.ScheduledCount++
	w.statsMu.Unlock()

	logger.Info("[Scheduler] Job scheduled", "job", name, "spec", spec)
	return nil
}

func (w *Worker) run(name string, job Job) {
	if w.ctx.Err() != nil {
		return
	}
	w.trackJobStart()
	defer w.trackJobEnd()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Worker] Job panic", "job", name, "panic", fmt.Sprint(r))
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := job(w.ctx); err != nil {
		logger.Error("[Worker] Job error", "job", name, "error", err)
		w.trackJobFailure()
		return
	}
	logger.Info("[Worker] Job completed", "job", name, "elapsed", time.Since(start))
}

// Shutdown gracefully stops the scheduler and all workers
func (w *Worker) Shutdown() {
	stopped := w.cron.Stop()
	w.cancel()
	<-stopped.Done()
	close(w.queue)
	w.wg.Wait()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts every finished job; FailedJobs is the failing subset
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
