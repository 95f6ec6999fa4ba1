// internal/common/errors/handler_test.go
package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/ThanushaGali/CaConnect/internal/common/logger"
)

// recordingGateway captures the fail and throw requests the commands send.
type recordingGateway struct {
	pb.GatewayClient
	failed []*pb.FailJobRequest
	thrown []*pb.ThrowErrorRequest
}

func (g *recordingGateway) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.failed = append(g.failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *recordingGateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

type jobClient struct {
	worker.JobClient
	gateway *recordingGateway
}

func noRetry(context.Context, error) bool { return false }

func (c jobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c jobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}

func newJob(retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Type: "browse-providers", Retries: retries}}
}

func TestHandleJobError_FailsWithDecrementedRetries(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		jobRetries  int32
		wantRetries int32
	}{
		{"engine leaves fewer than table", NewQueryExecutionFailedError("providers", stderrors.New("timeout")), 3, 2},
		{"last attempt ends at zero", NewQueryExecutionFailedError("providers", stderrors.New("timeout")), 1, 0},
		{"table caps a generous engine count", NewCacheUnavailableError(stderrors.New("refused")), 5, 1},
		{"retryable internal error uses default", func() *StandardError {
			e := NewInternalError(context.DeadlineExceeded)
			e.Retryable = true
			return e
		}(), 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &recordingGateway{}
			h := NewErrorHandler(logger.NewTestLogger(t))

			h.HandleJobError(context.Background(), jobClient{gateway: gw}, newJob(tt.jobRetries), tt.err)

			require.Len(t, gw.failed, 1)
			assert.Empty(t, gw.thrown)
			assert.Equal(t, int64(7), gw.failed[0].JobKey)
			assert.Equal(t, tt.wantRetries, gw.failed[0].Retries)
			assert.Less(t, gw.failed[0].Retries, tt.jobRetries)
		})
	}
}

func TestHandleJobError_ThrowsBusinessErrors(t *testing.T) {
	gw := &recordingGateway{}
	h := NewErrorHandler(logger.NewTestLogger(t))

	h.HandleJobError(context.Background(), jobClient{gateway: gw}, newJob(3), NewProviderNotFoundError("42"))

	assert.Empty(t, gw.failed)
	require.Len(t, gw.thrown, 1)
	assert.Equal(t, "PROVIDER_NOT_FOUND", gw.thrown[0].ErrorCode)
}

func TestHandleJobError_NoRetriesLeftThrows(t *testing.T) {
	gw := &recordingGateway{}
	h := NewErrorHandler(logger.NewTestLogger(t))

	h.HandleJobError(context.Background(), jobClient{gateway: gw}, newJob(0), NewCatalogLoadFailedError("embedded", stderrors.New("eof")))

	assert.Empty(t, gw.failed)
	require.Len(t, gw.thrown, 1)
	assert.Equal(t, "CATALOG_LOAD_FAILED", gw.thrown[0].ErrorCode)
}
