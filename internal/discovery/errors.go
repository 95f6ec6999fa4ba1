// internal/discovery/errors.go
package discovery

import (
	"context"
	"errors"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
)

// Classify maps an error returned by this package onto the shared error
// model used by workers and the HTTP surface. The original message is kept
// as the details.
func Classify(err error) *commonerrors.StandardError {
	if err == nil {
		return nil
	}

	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	var out *commonerrors.StandardError
	switch {
	case errors.Is(err, ErrInvalidSortKey):
		out = commonerrors.NewInvalidSortKeyError("")
	case errors.Is(err, ErrInvalidFilter):
		out = commonerrors.NewInvalidFilterFormatError("")
	case errors.Is(err, ErrServiceNotFound):
		out = commonerrors.NewServiceNotFoundError("", "")
	case errors.Is(err, ErrProviderNotFound):
		out = commonerrors.NewProviderNotFoundError("")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		out = commonerrors.NewInternalError(err)
		out.Retryable = true
	default:
		return commonerrors.NewInternalError(err)
	}
	out.Details = err.Error()
	return out
}
