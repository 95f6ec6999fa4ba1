// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

// BrowseResponse is the body of GET /api/v1/providers.
type BrowseResponse struct {
	RequestID     string                   `json:"requestId"`
	Total         int                      `json:"total"`
	Empty         bool                     `json:"empty"`
	CanClear      bool                     `json:"canClear"`
	SortBy        discovery.SortKey        `json:"sortBy"`
	ViewMode      discovery.ViewMode       `json:"viewMode"`
	ActiveFilters []discovery.ActiveFilter `json:"activeFilters"`
	Search        *discovery.ActiveFilter  `json:"search,omitempty"`
	Providers     []*models.Provider       `json:"providers"`
}

type ServiceResponse struct {
	Provider *models.Provider `json:"provider"`
	Service  models.Service   `json:"service"`
}

type SuggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.name,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.readiness != nil {
		if err := s.readiness.Ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{"error": err.Error()})
			Unavailable(w, err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f, err := filterStateFromQuery(q)
	if err != nil {
		BadRequest(w, commonerrors.ErrCodeInvalidFilterFormat, err.Error(), r.URL.Path)
		return
	}
	if err := s.discovery.ValidateFilters(f); err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := discovery.ParseViewMode(q.Get("view"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.discovery.Browse(r.Context(), discovery.Request{
		Filters: f,
		Sort:    discovery.SortKey(q.Get("sort")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	sortKey, _ := discovery.ParseSortKey(q.Get("sort"))
	writeJSON(w, http.StatusOK, BrowseResponse{
		RequestID:     requestID(r.Context()),
		Total:         res.Total,
		Empty:         res.Empty,
		CanClear:      res.CanClear,
		SortBy:        sortKey,
		ViewMode:      mode,
		ActiveFilters: res.ActiveFilters,
		Search:        res.Search,
		Providers:     res.Providers,
	})
}

func (s *Server) handleProvider(w http.ResponseWriter, r *http.Request) {
	p, err := s.discovery.Provider(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProviderService(w http.ResponseWriter, r *http.Request) {
	p, svc, err := s.discovery.ProviderService(r.Context(), r.PathValue("id"), r.PathValue("serviceId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ServiceResponse{Provider: p, Service: svc})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.discovery.Options())
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := discovery.DefaultSuggestionLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			BadRequest(w, commonerrors.ErrCodeInvalidInput, fmt.Sprintf("limit must be a positive integer, got %q", raw), r.URL.Path)
			return
		}
		limit = n
	}

	query := q.Get("q")
	suggestions := s.discovery.Suggest(query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Query: query, Suggestions: suggestions})
}

// filterStateFromQuery reads the browse filters from query parameters. Missing
// parameters keep their defaults; thresholds are clamped to the slider range.
func filterStateFromQuery(q url.Values) (discovery.FilterState, error) {
	f := discovery.DefaultFilterState().
		WithQuery(q.Get("q")).
		WithDomain(q.Get("domain")).
		WithLocation(q.Get("location"))

	if raw := q.Get("minExperience"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("minExperience must be an integer, got %q", raw)
		}
		f = f.WithMinExperience(years)
	}
	if raw := q.Get("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fmt.Errorf("minRating must be a number, got %q", raw)
		}
		f = f.WithMinRating(rating)
	}
	return f.Normalized(), nil
}
