package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const rankingCacheKey = "leaderboard:default"

// RankingCache caches the serialized default (unfiltered) leaderboard.
// Filtered views are cheap enough to compute per request; only the landing
// page query is hot.
type RankingCache struct {
	ttl time.Duration
}

// NewRankingCache creates a ranking cache with the given entry lifetime
func NewRankingCache(ttl time.Duration) *RankingCache {
	return &RankingCache{ttl: ttl}
}

// GetDefault loads the cached ranking into dst. Returns false on a miss.
func (c *RankingCache) GetDefault(ctx context.Context, dst interface{}) (bool, error) {
	raw, err := Get(ctx, rankingCacheKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetDefault stores the ranking
func (c *RankingCache) SetDefault(ctx context.Context, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Set(ctx, rankingCacheKey, string(b), c.ttl)
}

// Invalidate drops the cached ranking. Called after any mutation that can
// change the aggregate.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	return Del(ctx, rankingCacheKey)
}
