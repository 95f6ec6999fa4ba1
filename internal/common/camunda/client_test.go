// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/common/errors"
)

func testClient() *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: 2,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RecoversFromTransientFailure(t *testing.T) {
	c := testClient()
	calls := 0

	got, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 2 {
			return nil, stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return "ok", nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestExecuteWithRetry_PermanentFailureIsNotRetried(t *testing.T) {
	c := testClient()
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("rpc error: code = NotFound desc = job not found")
	}, "complete-job")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeEngineRejected, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	c := testClient()
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("context deadline exceeded")
	}, "topology")

	assert.Equal(t, 3, calls)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeEngineTimeout, stdErr.Code)
}

func TestExecuteWithRetry_StopsOnCancel(t *testing.T) {
	c := testClient()
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
		return nil, stderrors.New("connection reset by peer")
	}, "topology")

	assert.ErrorIs(t, err, context.Canceled)
}

type recordingRecorder struct {
	taskTypes []string
}

func (r *recordingRecorder) RecordJob(_ context.Context, taskType string, _ time.Duration) {
	r.taskTypes = append(r.taskTypes, taskType)
}

func TestInstrument(t *testing.T) {
	rec := &recordingRecorder{}
	handled := 0
	h := Instrument("browse-providers", rec, func(worker.JobClient, entities.Job) { handled++ })

	h(nil, entities.Job{})
	h(nil, entities.Job{})

	assert.Equal(t, 2, handled)
	assert.Equal(t, []string{"browse-providers", "browse-providers"}, rec.taskTypes)
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings("zeebe:26500", 3*time.Second)

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cfg.RetryConfig)
}
