package media

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedStore is a read-through Redis cache in front of another Store.
// Assets never change once uploaded, so entries are only bounded by TTL.
// Misses are not cached: a record that appears later must become visible.
type CachedStore struct {
	next Store
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedStore wraps next with a Redis cache.
func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(id string) string { return "media:" + id }

// FindByID serves from Redis when possible. Redis failures fall through to
// the wrapped store.
func (c *CachedStore) FindByID(ctx context.Context, id string) (*Asset, error) {
	log := zerolog.Ctx(ctx)
	key := cacheKey(id)

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var a Asset
		if err := json.Unmarshal(b, &a); err == nil {
			return &a, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable media cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("media cache get failed")
	}

	a, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(a); err == nil {
		if err := c.rdb.Set(ctx, key, buf, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("media cache set failed")
		}
	}
	return a, nil
}
