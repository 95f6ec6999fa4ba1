// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"github.com/ThanushaGali/CaConnect/internal/common/config"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
)

// JobRecorder receives one call per handled job.
type JobRecorder interface {
	RecordJob(ctx context.Context, taskType string, duration time.Duration)
}

// Workers tracks the job workers opened against one Zeebe client so they can
// be closed together on shutdown.
type Workers struct {
	client   zbc.Client
	recorder JobRecorder
	logger   logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, recorder JobRecorder, log logger.Logger) *Workers {
	return &Workers{
		client:   client,
		recorder: recorder,
		logger:   log,
		workers:  make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless it is disabled. It reports
// whether a worker was opened.
func (w *Workers) Start(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		w.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jobWorker := w.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, w.recorder, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	w.mu.Lock()
	w.workers[taskType] = jobWorker
	w.mu.Unlock()

	w.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Running lists the task types with an open worker.
func (w *Workers) Running() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.workers))
	for taskType := range w.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (w *Workers) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for taskType, jw := range w.workers {
		jw.Close()
		jw.AwaitClose()
		w.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
		delete(w.workers, taskType)
	}
}

// Instrument wraps handler so every job is reported to recorder. A nil
// recorder returns handler unchanged.
func Instrument(taskType string, recorder JobRecorder, handler worker.JobHandler) worker.JobHandler {
	if recorder == nil {
		return handler
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler(client, job)
		recorder.RecordJob(context.Background(), taskType, time.Since(start))
	}
}
