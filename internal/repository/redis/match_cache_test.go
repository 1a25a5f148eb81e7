package redis

import (
	"context"
	"testing"
	"time"

	"uniFinder/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *MatchCacheRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewMatchCacheRepository(client)
}

func TestMatchCacheRepository_RoundTrip(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	tuition := 42000.0
	matches := []domain.UniversityMatch{{
		University: domain.University{
			Name:              "Alpha",
			AvgTuitionPerYear: &tuition,
			RequiredTests:     datatypes.JSONSlice[string]{"SAT"},
		},
		Score:        85,
		Explanations: []string{"Lifestyle: Chile is not a preferred country (-15)"},
	}}

	require.NoError(t, repo.SetMatches(ctx, "match:k", matches, time.Minute))

	got, ok, err := repo.GetMatches(ctx, "match:k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 85, got[0].Score)
	assert.Equal(t, tuition, *got[0].AvgTuitionPerYear)
	assert.Equal(t, matches[0].Explanations, got[0].Explanations)

	assert.Equal(t, time.Minute, mr.TTL("match:k"))
}

func TestMatchCacheRepository_Miss(t *testing.T) {
	_, repo := setupMiniredis(t)

	got, ok, err := repo.GetMatches(context.Background(), "match:absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMatchCacheRepository_Expiry(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMatches(ctx, "match:k", []domain.UniversityMatch{}, time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := repo.GetMatches(ctx, "match:k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchCacheRepository_CorruptEntry(t *testing.T) {
	mr, repo := setupMiniredis(t)
	require.NoError(t, mr.Set("match:bad", "not json"))

	_, ok, err := repo.GetMatches(context.Background(), "match:bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestMatchCacheRepository_ServerDown(t *testing.T) {
	mr, repo := setupMiniredis(t)
	mr.Close()

	_, _, err := repo.GetMatches(context.Background(), "match:k")
	assert.Error(t, err)

	err = repo.SetMatches(context.Background(), "match:k", nil, time.Minute)
	assert.Error(t, err)
}
