package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"uniFinder/domain"
	"uniFinder/pkg/logger"
	"uniFinder/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeCatalog struct {
	rows  []domain.University
	err   error
	calls int
}

func (f *fakeCatalog) FindAll(context.Context) ([]domain.University, error) {
	f.calls++
	return f.rows, f.err
}

type fakeVersioner struct {
	version string
	err     error
}

func (f *fakeVersioner) CatalogVersion(context.Context) (string, error) {
	return f.version, f.err
}

type memoryCache struct {
	entries  map[string][]domain.UniversityMatch
	ttls     map[string]time.Duration
	getErr   error
	setErr   error
	setCalls int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string][]domain.UniversityMatch),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *memoryCache) GetMatches(_ context.Context, key string) ([]domain.UniversityMatch, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) SetMatches(_ context.Context, key string, matches []domain.UniversityMatch, ttl time.Duration) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = matches
	m.ttls[key] = ttl
	return nil
}

func testCatalog() []domain.University {
	return []domain.University{
		{Name: "Alpha", AvgTuitionPerYear: f64(30000)},
		{Name: "Beta", AvgTuitionPerYear: f64(60000)},
	}
}

func budgetCriteria(budget float64) domain.MatchCriteria {
	return domain.MatchCriteria{
		Financials: domain.Some(domain.FinancialsModule{
			Enabled: domain.Some(true),
			Filters: domain.Some(domain.FinancialsFilters{MaxBudget: domain.Some(budget)}),
		}),
	}
}

func TestService_MatchUniversities(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	catalog := &fakeCatalog{rows: testCatalog()}
	svc := NewService(catalog)

	got, err := svc.MatchUniversities(context.Background(), budgetCriteria(40000), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 100, got[0].Score)
	assert.Equal(t, 70, got[1].Score)
}

func TestService_MatchUniversities_Errors(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))

	boom := errors.New("db down")
	_, err := NewService(&fakeCatalog{err: boom}).MatchUniversities(context.Background(), domain.MatchCriteria{}, 10)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	catalog := &fakeCatalog{}
	_, err = NewService(catalog).MatchUniversities(ctx, domain.MatchCriteria{}, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, catalog.calls)
}

func TestCachedMatcher_HitAndMiss(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	catalog := &fakeCatalog{rows: testCatalog()}
	cache := newMemoryCache()
	m := NewCachedMatcher(NewService(catalog), &fakeVersioner{version: "2-100"}, cache, time.Minute)
	ctx := context.Background()

	hits := testutil.ToFloat64(metrics.MatchCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(metrics.MatchCacheLookups.WithLabelValues("miss"))

	first, err := m.MatchUniversities(ctx, budgetCriteria(40000), 10)
	require.NoError(t, err)
	second, err := m.MatchUniversities(ctx, budgetCriteria(40000), 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.MatchCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.MatchCacheLookups.WithLabelValues("hit")))

	for _, ttl := range cache.ttls {
		assert.Equal(t, time.Minute, ttl)
	}

	_, err = m.MatchUniversities(ctx, budgetCriteria(40000), 1)
	require.NoError(t, err)
	_, err = m.MatchUniversities(ctx, budgetCriteria(20000), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.calls, "different topN or criteria is a different entry")
}

func TestCachedMatcher_VersionChangeInvalidates(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	catalog := &fakeCatalog{rows: testCatalog()}
	versioner := &fakeVersioner{version: "2-100"}
	m := NewCachedMatcher(NewService(catalog), versioner, newMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
	require.NoError(t, err)

	versioner.version = "3-200"
	catalog.rows = append(catalog.rows, domain.University{Name: "Gamma"})

	got, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, catalog.calls)
}

func TestCachedMatcher_FailuresFallThrough(t *testing.T) {
	logger.Use(zaptest.NewLogger(t))
	ctx := context.Background()

	t.Run("versioner error", func(t *testing.T) {
		catalog := &fakeCatalog{rows: testCatalog()}
		cache := newMemoryCache()
		m := NewCachedMatcher(NewService(catalog), &fakeVersioner{err: errors.New("timeout")}, cache, time.Minute)

		got, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Zero(t, cache.setCalls)
	})

	t.Run("cache read error", func(t *testing.T) {
		catalog := &fakeCatalog{rows: testCatalog()}
		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		m := NewCachedMatcher(NewService(catalog), &fakeVersioner{version: "v"}, cache, time.Minute)

		got, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("cache write error", func(t *testing.T) {
		cache := newMemoryCache()
		cache.setErr = errors.New("redis down")
		m := NewCachedMatcher(NewService(&fakeCatalog{rows: testCatalog()}), &fakeVersioner{version: "v"}, cache, time.Minute)

		got, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("matcher error is not cached", func(t *testing.T) {
		cache := newMemoryCache()
		m := NewCachedMatcher(NewService(&fakeCatalog{err: errors.New("db down")}), &fakeVersioner{version: "v"}, cache, time.Minute)

		_, err := m.MatchUniversities(ctx, domain.MatchCriteria{}, 10)
		assert.Error(t, err)
		assert.Zero(t, cache.setCalls)
	})
}

func TestCacheKey(t *testing.T) {
	a, err := cacheKey("1-1", budgetCriteria(100), 10)
	require.NoError(t, err)
	b, err := cacheKey("1-1", budgetCriteria(100), 10)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Regexp(t, `^match:1-1:[0-9a-f]{16}$`, a)

	c, err := cacheKey("1-2", budgetCriteria(100), 10)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
