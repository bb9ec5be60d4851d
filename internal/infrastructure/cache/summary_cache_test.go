package cache

import (
	"context"
	"testing"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySummaryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemorySummaryCache(time.Minute)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache is a miss")

	summary := &donation.ImpactSummary{Records: 2, MealsSaved: 7.5, WeightSavedKg: 3, CO2ReducedKg: 7.5}
	require.NoError(t, cache.Set(ctx, summary))
	summary.Records = 99

	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.Records, "stored value is a copy")
	got.MealsSaved = 0

	again, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.5, again.MealsSaved)

	require.NoError(t, cache.Invalidate(ctx))
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemorySummaryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemorySummaryCache(time.Minute)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, &donation.ImpactSummary{Records: 1}))
	now = now.Add(2 * time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	stores := Open(context.Background(), config.RedisConfig{Enabled: false}, nil)
	defer stores.Close()

	assert.IsType(t, &InMemorySummaryCache{}, stores.Summary)
	assert.IsType(t, &auth.InMemoryTokenBlacklist{}, stores.Blacklist)
	assert.Nil(t, stores.Redis())
}

func TestOpen_UnreachableRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	stores := Open(context.Background(), config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, nil)
	defer stores.Close()

	assert.IsType(t, &InMemorySummaryCache{}, stores.Summary)
	assert.Nil(t, stores.Redis())
}
