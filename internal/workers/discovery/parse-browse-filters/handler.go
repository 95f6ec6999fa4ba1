// internal/workers/discovery/parse-browse-filters/handler.go
package parsebrowsefilters

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/ThanushaGali/CaConnect/pkg/registry"
)

const TaskType = registry.TaskParseBrowseFilters

var ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")

// Vocabulary checks domain and location values against the loaded catalog.
type Vocabulary interface {
	ValidateFilters(f discovery.FilterState) error
}

type Handler struct {
	config     *Config
	vocabulary Vocabulary
	schema     *validation.Schema
	errHandler *commonerrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, vocabulary Vocabulary, log logger.Logger) (*Handler, error) {
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
		vocabulary: vocabulary,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.RawFilters == nil {
		input.RawFilters = map[string]interface{}{}
	}

	result, err := h.schema.Validate(input)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilterFormat, result.Err())
	}

	raw := input.RawFilters
	out := &Output{SortBy: discovery.DefaultSortKey, ViewMode: discovery.DefaultViewMode}

	f := discovery.DefaultFilterState().
		WithQuery(strings.TrimSpace(stringField(raw, "query"))).
		WithDomain(stringField(raw, "domain")).
		WithLocation(stringField(raw, "location"))

	if v, ok := numberField(raw, "minExperience"); ok {
		years := discovery.ClampExperienceFloat(v)
		if float64(years) != v {
			out.Adjusted = append(out.Adjusted, "minExperience")
		}
		f = f.WithMinExperience(years)
	}
	if v, ok := numberField(raw, "minRating"); ok {
		if discovery.ClampRating(v) != v {
			out.Adjusted = append(out.Adjusted, "minRating")
		}
		f = f.WithMinRating(v)
	}
	f = f.Normalized()

	if h.vocabulary != nil {
		if err := h.vocabulary.ValidateFilters(f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilterFormat, err)
		}
	}

	if s := stringField(raw, "sortBy"); s != "" {
		key, err := discovery.ParseSortKey(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilterFormat, err)
		}
		out.SortBy = key
	}
	if s := stringField(raw, "viewMode"); s != "" {
		mode, err := discovery.ParseViewMode(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilterFormat, err)
		}
		out.ViewMode = mode
	}

	out.Filters = f
	out.ActiveFilters = discovery.ActiveFilters(f)

	h.logger.Info("filters parsed successfully", map[string]interface{}{
		"domain":        f.Domain,
		"location":      f.Location,
		"minExperience": f.MinExperience,
		"minRating":     f.MinRating,
		"hasSearch":     f.HasSearch(),
		"sortBy":        out.SortBy,
		"viewMode":      out.ViewMode,
		"adjusted":      out.Adjusted,
	})

	return out, nil
}

func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return s
}

// numberField reads a numeric filter value. Job variables decode to float64;
// values built in Go may arrive as ints.
func numberField(raw map[string]interface{}, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
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
	stdErr := toStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}

func toStandardError(err error) *commonerrors.StandardError {
	if errors.Is(err, ErrInvalidFilterFormat) {
		return commonerrors.NewInvalidFilterFormatError(err.Error())
	}
	return discovery.Classify(err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
