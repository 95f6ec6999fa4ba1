// internal/workers/discovery/lookup-provider/handler.go
package lookupprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/common/metrics"
	"github.com/ThanushaGali/CaConnect/internal/common/validation"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
	"github.com/ThanushaGali/CaConnect/pkg/registry"
)

const TaskType = registry.TaskLookupProvider

// Directory resolves providers and their services by id.
type Directory interface {
	Provider(ctx context.Context, id string) (*models.Provider, error)
	ProviderService(ctx context.Context, providerID, serviceID string) (*models.Provider, models.Service, error)
}

type Handler struct {
	config     *Config
	directory  Directory
	schema     *validation.Schema
	errHandler *commonerrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, directory Directory, log logger.Logger) (*Handler, error) {
	activity, err := registry.Default().Find(TaskType)
	if err != nil {
		return nil, err
	}
	schema, err := validation.Compile(activity.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("compile %s input schema: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		directory:  directory,
		schema:     schema,
		errHandler: commonerrors.NewErrorHandler(log),
		logger:     log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
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
	input.ProviderID = strings.TrimSpace(input.ProviderID)
	input.ServiceID = strings.TrimSpace(input.ServiceID)

	result, err := h.schema.Validate(input)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, commonerrors.NewInvalidInputError(result.Err().Error())
	}

	if input.ServiceID == "" {
		p, err := h.directory.Provider(ctx, input.ProviderID)
		if err != nil {
			return nil, err
		}
		h.logger.Debug("provider resolved", map[string]interface{}{"providerId": p.ID})
		return &Output{Provider: p}, nil
	}

	p, svc, err := h.directory.ProviderService(ctx, input.ProviderID, input.ServiceID)
	if err != nil {
		return nil, err
	}
	h.logger.Debug("provider service resolved", map[string]interface{}{
		"providerId": p.ID,
		"serviceId":  svc.ID,
	})
	return &Output{Provider: p, Service: &svc}, nil
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
