package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cache publishes seed commitments so fronting services can serve lookups
// without hitting the primary store. A nil *Cache is a valid no-op cache.
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *Cache) SetCommitment(seedID, commitment string) {
	if c == nil {
		return
	}
	c.rdb.Set(context.Background(), "commitment:"+seedID, commitment, 0)
}

func (c *Cache) Commitment(seedID string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, err := c.rdb.Get(context.Background(), "commitment:"+seedID).Result()
	if err != nil {
		return "", false
	}
	return v, true
}
