// internal/api/problem.go
package api

import (
	"encoding/json"
	"net/http"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound    = "https://caconnect.in/problems/not-found"
	ProblemTypeBadRequest  = "https://caconnect.in/problems/bad-request"
	ProblemTypeInternal    = "https://caconnect.in/problems/internal-error"
	ProblemTypeUnavailable = "https://caconnect.in/problems/unavailable"
)

// Problem represents an RFC 7807 Problem Details response. Code is an
// extension member carrying the error code shared with the workers.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Code     string `json:"code,omitempty"`
}

func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func BadRequest(w http.ResponseWriter, code commonerrors.ErrorCode, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeBadRequest,
		Title:    "Bad Request",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: instance,
		Code:     string(code),
	})
}

func NotFound(w http.ResponseWriter, code commonerrors.ErrorCode, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: instance,
		Code:     string(code),
	})
}

func Unavailable(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: instance,
	})
}

func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: instance,
		Code:     string(commonerrors.ErrCodeInternal),
	})
}

// writeError picks the problem response for an error from the discovery
// service.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := discovery.Classify(err)
	switch commonerrors.GetErrorCategory(stdErr.Code) {
	case "VALIDATION":
		BadRequest(w, stdErr.Code, stdErr.Details, r.URL.Path)
	case "LOOKUP":
		NotFound(w, stdErr.Code, stdErr.Details, r.URL.Path)
	default:
		InternalError(w, stdErr.Message, r.URL.Path)
	}
}
