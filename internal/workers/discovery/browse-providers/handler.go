// internal/workers/discovery/browse-providers/handler.go
package browseproviders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/common/metrics"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/pkg/registry"
)

const TaskType = registry.TaskBrowseProviders

// Browser runs one browse query against the catalog.
type Browser interface {
	Browse(ctx context.Context, req discovery.Request) (*discovery.Result, error)
}

type Handler struct {
	config     *Config
	browser    Browser
	errHandler *commonerrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, browser Browser, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		browser:    browser,
		errHandler: commonerrors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input := Input{Filters: discovery.DefaultFilterState()}
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, commonerrors.NewInvalidFilterFormatError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	mode, err := discovery.ParseViewMode(input.ViewMode)
	if err != nil {
		return nil, err
	}

	res, err := h.browser.Browse(ctx, discovery.Request{
		Filters: input.Filters.Normalized(),
		Sort:    discovery.SortKey(input.SortBy),
	})
	if err != nil {
		return nil, err
	}

	out := &Output{
		RequestID:     uuid.New().String(),
		Total:         res.Total,
		Empty:         res.Empty,
		CanClear:      res.CanClear,
		ViewMode:      mode,
		ActiveFilters: res.ActiveFilters,
		Search:        res.Search,
	}
	out.SortBy, _ = discovery.ParseSortKey(input.SortBy)

	providers := res.Providers
	if h.config.MaxResults > 0 && len(providers) > h.config.MaxResults {
		providers = providers[:h.config.MaxResults]
		out.Truncated = true
	}
	out.Providers = make([]ProviderSummary, len(providers))
	for i, p := range providers {
		out.Providers[i] = summarize(p, mode)
	}

	h.logger.Info("providers browsed", map[string]interface{}{
		"requestId": out.RequestID,
		"total":     out.Total,
		"returned":  len(out.Providers),
		"sortBy":    out.SortBy,
		"active":    len(out.ActiveFilters),
	})
	return out, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := discovery.Classify(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
