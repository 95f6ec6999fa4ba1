// internal/discovery/service.go
package discovery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/common/metrics"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

var (
	ErrProviderNotFound = errors.New("PROVIDER_NOT_FOUND")
	ErrServiceNotFound  = errors.New("SERVICE_NOT_FOUND")
	ErrInvalidFilter    = errors.New("INVALID_FILTER_FORMAT")
)

// Catalog is the read-only provider collection the service browses.
type Catalog interface {
	Providers() []*models.Provider
	Get(id string) (*models.Provider, bool)
	Domains() []string
	Locations() []string
	Version() string
}

// ResultCache memoizes ranked provider ids per browse key. A nil ResultCache
// disables memoization.
type ResultCache interface {
	Get(ctx context.Context, key string) (ids []string, ok bool, err error)
	Set(ctx context.Context, key string, ids []string) error
}

// Request is one browse query.
type Request struct {
	Filters FilterState `json:"filters"`
	Sort    SortKey     `json:"sortBy"`
}

// Bounds describes a slider.
type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Options is the vocabulary a filter panel is built from.
type Options struct {
	Domains    []string     `json:"domains"`
	Locations  []string     `json:"locations"`
	SortKeys   []SortOption `json:"sortKeys"`
	Experience Bounds       `json:"experience"`
	Rating     Bounds       `json:"rating"`
}

type Service struct {
	catalog Catalog
	cache   ResultCache
	logger  logger.Logger
}

func NewService(cat Catalog, cache ResultCache, log logger.Logger) *Service {
	return &Service{
		catalog: cat,
		cache:   cache,
		logger:  log.WithFields(map[string]interface{}{"component": "discovery"}),
	}
}

// Browse filters and ranks the catalog for req. Cache failures are logged and
// the result is computed directly.
func (s *Service) Browse(ctx context.Context, req Request) (*Result, error) {
	key, err := ParseSortKey(string(req.Sort))
	if err != nil {
		return nil, err
	}
	req.Sort = key

	if s.cache == nil {
		res := Apply(s.catalog.Providers(), req.Filters, key)
		s.record(key, metrics.CacheDisabled, res)
		return &res, nil
	}

	cacheKey := CacheKey(s.catalog.Version(), req)
	ids, ok, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.logger.WithError(commonerrors.NewCacheUnavailableError(err)).Warn("result cache read failed", map[string]interface{}{
			"key": cacheKey,
		})
	}
	if ok {
		if res, complete := s.hydrate(ids, req.Filters); complete {
			s.record(key, metrics.CacheHit, res)
			return &res, nil
		}
	}

	res := Apply(s.catalog.Providers(), req.Filters, key)
	outcome := metrics.CacheMiss
	if err := s.cache.Set(ctx, cacheKey, providerIDs(res.Providers)); err != nil {
		outcome = metrics.CacheError
		s.logger.WithError(commonerrors.NewCacheUnavailableError(err)).Warn("result cache write failed", map[string]interface{}{
			"key": cacheKey,
		})
	}
	s.record(key, outcome, res)
	return &res, nil
}

// Provider looks a provider up by id.
func (s *Service) Provider(_ context.Context, id string) (*models.Provider, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	return p, nil
}

// ProviderService looks up one service offered by a provider.
func (s *Service) ProviderService(ctx context.Context, providerID, serviceID string) (*models.Provider, models.Service, error) {
	p, err := s.Provider(ctx, providerID)
	if err != nil {
		return nil, models.Service{}, err
	}
	svc, ok := p.FindService(serviceID)
	if !ok {
		return p, models.Service{}, fmt.Errorf("%w: provider %s has no service %s", ErrServiceNotFound, providerID, serviceID)
	}
	return p, svc, nil
}

func (s *Service) Options() Options {
	return Options{
		Domains:    s.catalog.Domains(),
		Locations:  s.catalog.Locations(),
		SortKeys:   SortOptions(),
		Experience: Bounds{Min: MinExperienceFloor, Max: MinExperienceCeil, Step: 1},
		Rating:     Bounds{Min: MinRatingFloor, Max: MinRatingCeil, Step: RatingStep},
	}
}

// Suggest completes a search query from domain names and provider names.
func (s *Service) Suggest(query string, limit int) []string {
	providers := s.catalog.Providers()
	candidates := make([]string, 0, len(s.catalog.Domains())+len(providers))
	candidates = append(candidates, s.catalog.Domains()...)
	for _, p := range providers {
		candidates = append(candidates, p.Name)
	}
	return Suggest(query, candidates, limit)
}

// ValidateFilters checks the sentinel-or-known rule for domain and location
// against the catalog vocabulary.
func (s *Service) ValidateFilters(f FilterState) error {
	if f.Domain != Any && !contains(s.catalog.Domains(), f.Domain) {
		return fmt.Errorf("%w: unknown domain %q", ErrInvalidFilter, f.Domain)
	}
	if f.Location != Any && !contains(s.catalog.Locations(), f.Location) {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidFilter, f.Location)
	}
	return nil
}

func (s *Service) hydrate(ids []string, f FilterState) (Result, bool) {
	providers := make([]*models.Provider, 0, len(ids))
	for _, id := range ids {
		p, ok := s.catalog.Get(id)
		if !ok {
			return Result{}, false
		}
		providers = append(providers, p)
	}
	res := Result{
		Providers:     providers,
		ActiveFilters: ActiveFilters(f),
		Total:         len(providers),
		Empty:         len(providers) == 0,
		CanClear:      !f.IsDefault(),
	}
	if chip, ok := SearchFilter(f); ok {
		res.Search = &chip
	}
	return res, true
}

func (s *Service) record(key SortKey, outcome string, res Result) {
	metrics.DiscoveryQueries.WithLabelValues(string(key), outcome).Inc()
	metrics.DiscoveryResultSize.Observe(float64(res.Total))
	if res.Empty {
		metrics.DiscoveryEmptyResults.Inc()
	}
	s.logger.Debug("browse served", map[string]interface{}{
		"sort":   key,
		"cache":  outcome,
		"total":  res.Total,
		"active": len(res.ActiveFilters),
	})
}

// CacheKey identifies a browse request against one catalog version.
func CacheKey(catalogVersion string, req Request) string {
	f := req.Filters
	rating := strconv.FormatFloat(f.MinRating, 'g', -1, 64)
	raw := fmt.Sprintf("%q|%q|%q|%d|%s|%s", f.Query, f.Domain, f.Location, f.MinExperience, rating, req.Sort)
	sum := sha256.Sum256([]byte(raw))
	return "discovery:browse:" + catalogVersion + ":" + hex.EncodeToString(sum[:12])
}

func providerIDs(ps []*models.Provider) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
