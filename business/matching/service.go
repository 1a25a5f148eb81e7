package matching

import (
	"context"
	"fmt"

	"uniFinder/domain"
	"uniFinder/pkg/logger"
	"uniFinder/pkg/metrics"
)

// CatalogRepository supplies the full, read-only university catalog.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.University, error)
}

// Matcher is implemented by Service and by CachedMatcher.
type Matcher interface {
	MatchUniversities(ctx context.Context, criteria domain.MatchCriteria, topN int) ([]domain.UniversityMatch, error)
}

type Service struct {
	catalogRepo CatalogRepository
}

var _ Matcher = (*Service)(nil)

func NewService(catalogRepo CatalogRepository) *Service {
	return &Service{catalogRepo: catalogRepo}
}

func (s *Service) MatchUniversities(ctx context.Context, criteria domain.MatchCriteria, topN int) ([]domain.UniversityMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	catalog, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to load university catalog", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	matches := Rank(catalog, criteria, topN)

	metrics.MatchRequests.Inc()
	metrics.MatchResultSize.Observe(float64(len(matches)))
	logger.Debug("universities matched", "catalog_size", len(catalog), "returned", len(matches), "top_n", topN)

	return matches, nil
}
