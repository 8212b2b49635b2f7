package services

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache là kho cache key/value dạng JSON.
// Get trả về (false, nil) khi không có key.
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache implement Cache bằng redis
type RedisCache struct {
	rdb *redis.Client
}

// NewCache trả về RedisCache, hoặc NoopCache khi rdb == nil
func NewCache(rdb *redis.Client) Cache {
	if rdb == nil {
		return NoopCache{}
	}
	return &RedisCache{rdb: rdb}
}

// Get lấy data từ Redis
func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set lưu dữ liệu vào Redis
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Delete xóa cache Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NoopCache không lưu gì, dùng khi không cấu hình Redis
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NoopCache) Delete(context.Context, ...string) error { return nil }

// Cache keys
const (
	cacheKeyBuildings = "buildings:all"
	cacheKeyCustomers = "customers:all"
	cacheKeyContracts = "contracts:all"
	cacheTTL          = 10 * time.Minute
)
