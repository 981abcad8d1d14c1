package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"rentnest/internal/domain"
)

const defaultCacheTTL = 5 * time.Minute

// PropertyCache is a read-through cache for single property lookups.
// A nil cache (redis not configured) behaves as a permanent miss, so
// callers never branch on availability.
type PropertyCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPropertyCache(rdb *redis.Client, ttl time.Duration) *PropertyCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &PropertyCache{rdb: rdb, ttl: ttl}
}

func propertyKey(id int64) string {
	return fmt.Sprintf("property:%d", id)
}

func (c *PropertyCache) Get(ctx context.Context, id int64) (*domain.Property, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, propertyKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("property cache get failed id=%d: %v", id, err)
		}
		return nil, false
	}
	var p domain.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("property cache decode failed id=%d: %v", id, err)
		return nil, false
	}
	return &p, true
}

func (c *PropertyCache) Set(ctx context.Context, p *domain.Property) {
	if c == nil || c.rdb == nil || p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, propertyKey(p.ID), raw, c.ttl).Err(); err != nil {
		log.Printf("property cache set failed id=%d: %v", p.ID, err)
	}
}

func (c *PropertyCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, propertyKey(id)).Err(); err != nil {
		log.Printf("property cache invalidate failed id=%d: %v", id, err)
	}
}
