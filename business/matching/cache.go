package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"uniFinder/domain"
	"uniFinder/pkg/logger"
	"uniFinder/pkg/metrics"

	"github.com/cespare/xxhash/v2"
)

// CatalogVersioner reports a value that changes whenever the catalog does.
type CatalogVersioner interface {
	CatalogVersion(ctx context.Context) (string, error)
}

type ResultCache interface {
	GetMatches(ctx context.Context, key string) ([]domain.UniversityMatch, bool, error)
	SetMatches(ctx context.Context, key string, matches []domain.UniversityMatch, ttl time.Duration) error
}

// CachedMatcher memoizes match results per catalog version for a bounded
// time. Any cache failure falls through to the wrapped matcher.
type CachedMatcher struct {
	next      Matcher
	versioner CatalogVersioner
	cache     ResultCache
	ttl       time.Duration
}

var _ Matcher = (*CachedMatcher)(nil)

func NewCachedMatcher(next Matcher, versioner CatalogVersioner, cache ResultCache, ttl time.Duration) *CachedMatcher {
	return &CachedMatcher{
		next:      next,
		versioner: versioner,
		cache:     cache,
		ttl:       ttl,
	}
}

func (m *CachedMatcher) MatchUniversities(ctx context.Context, criteria domain.MatchCriteria, topN int) ([]domain.UniversityMatch, error) {
	version, err := m.versioner.CatalogVersion(ctx)
	if err != nil {
		logger.Warn("catalog version unavailable, skipping match cache", "error", err)
		metrics.MatchCacheLookups.WithLabelValues("error").Inc()
		return m.next.MatchUniversities(ctx, criteria, topN)
	}

	key, err := cacheKey(version, criteria, topN)
	if err != nil {
		metrics.MatchCacheLookups.WithLabelValues("error").Inc()
		return m.next.MatchUniversities(ctx, criteria, topN)
	}

	cached, ok, err := m.cache.GetMatches(ctx, key)
	switch {
	case err != nil:
		logger.Warn("match cache read failed", "key", key, "error", err)
		metrics.MatchCacheLookups.WithLabelValues("error").Inc()
	case ok:
		metrics.MatchCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.MatchCacheLookups.WithLabelValues("miss").Inc()
	}

	matches, err := m.next.MatchUniversities(ctx, criteria, topN)
	if err != nil {
		return nil, err
	}

	if err := m.cache.SetMatches(ctx, key, matches, m.ttl); err != nil {
		logger.Warn("match cache write failed", "key", key, "error", err)
	}

	return matches, nil
}

func cacheKey(version string, criteria domain.MatchCriteria, topN int) (string, error) {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("failed to encode criteria: %w", err)
	}

	d := xxhash.New()
	_, _ = d.Write(raw)
	_, _ = d.WriteString("|" + strconv.Itoa(topN))

	return fmt.Sprintf("match:%s:%016x", version, d.Sum64()), nil
}
