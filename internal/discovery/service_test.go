// internal/discovery/service_test.go
package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/common/logger"
)

func TestService_BrowseWithoutCache(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	res, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState(), Sort: SortPriceLow})

	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids(res.Providers))
}

func TestService_BrowseDefaultsSort(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	res, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState()})

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, ids(res.Providers))
}

func TestService_BrowseRejectsUnknownSort(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(newStubCatalog(sampleProviders()), cache, logger.NewNoOpLogger())

	_, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState(), Sort: "newest"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSortKey))
	assert.Zero(t, cache.gets)
}

func TestService_BrowseCachesRankedIDs(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(newStubCatalog(sampleProviders()), cache, logger.NewNoOpLogger())
	req := Request{Filters: DefaultFilterState().WithDomain("GST"), Sort: SortPriceHigh}

	first, err := svc.Browse(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Browse(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, ids(first.Providers), ids(second.Providers))
	assert.Equal(t, first.ActiveFilters, second.ActiveFilters)
	assert.Equal(t, []string{"1", "3"}, cache.entries[CacheKey("v1", req)])
}

func TestService_BrowseIgnoresCacheFailures(t *testing.T) {
	cache := newMemoryCache()
	cache.failGet = true
	cache.failSet = true
	svc := NewService(newStubCatalog(sampleProviders()), cache, logger.NewNoOpLogger())

	res, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState()})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
}

func TestService_BrowseStaleCacheEntryRecomputes(t *testing.T) {
	cache := newMemoryCache()
	req := Request{Filters: DefaultFilterState(), Sort: SortRating}
	cache.entries[CacheKey("v1", req)] = []string{"2", "gone"}
	svc := NewService(newStubCatalog(sampleProviders()), cache, logger.NewNoOpLogger())

	res, err := svc.Browse(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, ids(res.Providers))
	assert.Equal(t, 1, cache.sets)
}

func TestCacheKey_VariesByInput(t *testing.T) {
	base := Request{Filters: DefaultFilterState(), Sort: SortRating}

	assert.Equal(t, CacheKey("v1", base), CacheKey("v1", base))
	assert.NotEqual(t, CacheKey("v1", base), CacheKey("v2", base))
	assert.NotEqual(t, CacheKey("v1", base), CacheKey("v1", Request{Filters: base.Filters, Sort: SortPriceLow}))
	assert.NotEqual(t, CacheKey("v1", base), CacheKey("v1", Request{Filters: base.Filters.WithQuery("x"), Sort: SortRating}))
}

func TestService_BrowseKeepsUnroundedRatingsApart(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(newStubCatalog(sampleProviders()), cache, logger.NewNoOpLogger())

	coarse, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState().WithMinRating(4.8)})
	require.NoError(t, err)
	fine, err := svc.Browse(context.Background(), Request{Filters: DefaultFilterState().WithMinRating(4.84)})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1"}, ids(coarse.Providers))
	assert.Equal(t, []string{"2"}, ids(fine.Providers))
	assert.NotEqual(t,
		CacheKey("v1", Request{Filters: DefaultFilterState().WithMinRating(4.5)}),
		CacheKey("v1", Request{Filters: DefaultFilterState().WithMinRating(4.54)}))
}

func TestService_Provider(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	p, err := svc.Provider(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", p.Name)

	_, err = svc.Provider(context.Background(), "42")
	assert.True(t, errors.Is(err, ErrProviderNotFound))
}

func TestService_ProviderService(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	p, s, err := svc.ProviderService(context.Background(), "1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "GST Registration", s.Name)

	_, _, err = svc.ProviderService(context.Background(), "1", "s9")
	assert.True(t, errors.Is(err, ErrServiceNotFound))

	_, _, err = svc.ProviderService(context.Background(), "9", "s1")
	assert.True(t, errors.Is(err, ErrProviderNotFound))
}

func TestService_Options(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	opts := svc.Options()

	assert.Contains(t, opts.Domains, "GST")
	assert.Len(t, opts.SortKeys, 5)
	assert.Equal(t, Bounds{Min: 0, Max: 20, Step: 1}, opts.Experience)
	assert.Equal(t, Bounds{Min: 0, Max: 5, Step: 0.1}, opts.Rating)
}

func TestService_SuggestDomainsBeforeNames(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	assert.Equal(t, []string{"Corporate Tax", "Rajesh Kumar"}, svc.Suggest("ra", DefaultSuggestionLimit))
}

func TestService_ValidateFilters(t *testing.T) {
	svc := NewService(newStubCatalog(sampleProviders()), nil, logger.NewNoOpLogger())

	assert.NoError(t, svc.ValidateFilters(DefaultFilterState()))
	assert.NoError(t, svc.ValidateFilters(DefaultFilterState().WithDomain("TDS").WithLocation("Delhi NCR")))
	assert.ErrorIs(t, svc.ValidateFilters(DefaultFilterState().WithDomain("Crypto")), ErrInvalidFilter)
	assert.ErrorIs(t, svc.ValidateFilters(DefaultFilterState().WithLocation("Goa")), ErrInvalidFilter)
}
