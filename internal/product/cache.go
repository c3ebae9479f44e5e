package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("product: cache miss")

// KV is the minimal key-value surface the cache needs. redisKV adapts
// *redis.Client to it; tests plug in an in-memory fake.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisKV struct {
	client *redis.Client
}

func NewRedisKV(addr string) KV {
	return &redisKV{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Cache is a cache-aside product read cache with singleflight de-duplication
// of concurrent loads. A nil *Cache is valid and always goes to the loader.
// Stock moved by order mutations is only invalidated lazily via the TTL, so
// the TTL should stay short.
type Cache struct {
	kv    KV
	ttl   time.Duration
	group singleflight.Group
}

func NewCache(kv KV, ttl time.Duration) *Cache {
	return &Cache{kv: kv, ttl: ttl}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetByID returns the cached product or loads, caches and returns it.
// Load errors are never cached.
func (c *Cache) GetByID(ctx context.Context, id int64, load func() (*Product, error)) (*Product, error) {
	if c == nil {
		return load()
	}

	key := cacheKey(id)

	if raw, err := c.kv.Get(ctx, key); err == nil {
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		p, err := load()
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(p); err == nil {
			_ = c.kv.Set(ctx, key, string(raw), c.ttl)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	p, _ := v.(*Product)
	return p, nil
}

// Invalidate drops cached entries after a product mutation.
func (c *Cache) Invalidate(ctx context.Context, ids ...int64) {
	if c == nil || len(ids) == 0 {
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	_ = c.kv.Del(ctx, keys...)
}
