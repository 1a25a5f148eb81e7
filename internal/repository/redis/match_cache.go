package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"uniFinder/business/matching"
	"uniFinder/domain"

	"github.com/redis/go-redis/v9"
)

type MatchCacheRepository struct {
	client *redis.Client
}

var _ matching.ResultCache = (*MatchCacheRepository)(nil)

func NewMatchCacheRepository(client *redis.Client) *MatchCacheRepository {
	return &MatchCacheRepository{
		client: client,
	}
}

// GetMatches returns ok=false on a cache miss.
func (r *MatchCacheRepository) GetMatches(ctx context.Context, key string) ([]domain.UniversityMatch, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get matches from Redis: %w", err)
	}

	var matches []domain.UniversityMatch
	if err := json.Unmarshal(val, &matches); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached matches: %w", err)
	}

	return matches, true, nil
}

func (r *MatchCacheRepository) SetMatches(ctx context.Context, key string, matches []domain.UniversityMatch, ttl time.Duration) error {
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store matches in Redis: %w", err)
	}

	return nil
}
