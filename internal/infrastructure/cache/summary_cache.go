package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/redis/go-redis/v9"
)

// DefaultSummaryTTL bounds how stale a cached impact summary can get
const DefaultSummaryTTL = 10 * time.Minute

const summaryKey = "remeals:impact:summary"

// RedisSummaryCache keeps the impact summary as a JSON string in Redis
type RedisSummaryCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisSummaryCache creates a summary cache on an existing client
func NewRedisSummaryCache(client redis.UniversalClient, ttl time.Duration) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &RedisSummaryCache{client: client, key: summaryKey, ttl: ttl}
}

// Get returns nil without error on a miss
func (c *RedisSummaryCache) Get(ctx context.Context) (*donation.ImpactSummary, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read impact summary: %w", err)
	}
	var summary donation.ImpactSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode impact summary: %w", err)
	}
	return &summary, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary *donation.ImpactSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store impact summary: %w", err)
	}
	return nil
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate impact summary: %w", err)
	}
	return nil
}

var _ appdonation.SummaryCache = (*RedisSummaryCache)(nil)

// InMemorySummaryCache is the single-process fallback when Redis is disabled
type InMemorySummaryCache struct {
	mu        sync.RWMutex
	summary   *donation.ImpactSummary
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemorySummaryCache creates an empty in-memory summary cache
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &InMemorySummaryCache{ttl: ttl, now: time.Now}
}

// Get returns a copy so callers cannot mutate the cached value
func (c *InMemorySummaryCache) Get(context.Context) (*donation.ImpactSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summary == nil || c.now().After(c.expiresAt) {
		return nil, nil
	}
	copied := *c.summary
	return &copied, nil
}

func (c *InMemorySummaryCache) Set(_ context.Context, summary *donation.ImpactSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *summary
	c.summary = &copied
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *InMemorySummaryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = nil
	return nil
}

var _ appdonation.SummaryCache = (*InMemorySummaryCache)(nil)
