package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()

	// DefaultTTL applies to reference lists; InitRedis overrides it from config.
	DefaultTTL = 5 * time.Minute

	ErrUnavailable = errors.New("redis not available")
	ErrMiss        = errors.New("cache miss")
)

// InitRedis initializes Redis connection
func InitRedis(addr, password string, ttl time.Duration) error {
	if ttl > 0 {
		DefaultTTL = ttl
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		_ = RedisClient.Close()
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// CloseRedis closes Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

const (
	// Reference lists feeding form dropdowns: refs:categories, refs:games, ...
	RefsCachePrefix = "refs:"

	RateLimitPrefix = "ratelimit:"
)

// Reference list names.
const (
	RefCategories = "categories"
	RefPublishers = "publishers"
	RefEquipment  = "equipment"
	RefVenues     = "venues"
	RefGames      = "games"
	RefPlayers    = "players"
)

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return ErrUnavailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves value from cache
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return ErrUnavailable
	}

	val, err := RedisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes keys from cache
func Delete(keys ...string) error {
	if !IsRedisAvailable() || len(keys) == 0 {
		return nil
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// DeletePattern removes all keys matching pattern
func DeletePattern(pattern string) error {
	if !IsRedisAvailable() {
		return nil
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// GetRefs loads a cached reference list into dest.
func GetRefs(name string, dest interface{}) error {
	return Get(RefsCachePrefix+name, dest)
}

// SetRefs caches a reference list for DefaultTTL.
func SetRefs(name string, value interface{}) error {
	return Set(RefsCachePrefix+name, value, DefaultTTL)
}

// InvalidateRefs drops the named reference lists.
func InvalidateRefs(names ...string) error {
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = RefsCachePrefix + name
	}
	return Delete(keys...)
}

// InvalidateAllRefs drops every cached reference list.
func InvalidateAllRefs() error {
	return DeletePattern(RefsCachePrefix + "*")
}

// CheckRateLimit counts one hit for key inside a fixed window. It reports
// whether the hit is allowed, the hits left, and how long until the window resets.
func CheckRateLimit(key string, maxRequests int, window time.Duration) (bool, int, time.Duration, error) {
	if !IsRedisAvailable() {
		return true, maxRequests, 0, nil // Allow if Redis unavailable
	}

	fullKey := RateLimitPrefix + key
	count, err := RedisClient.Incr(ctx, fullKey).Result()
	if err != nil {
		return true, maxRequests, 0, err
	}
	if count == 1 {
		if err := RedisClient.Expire(ctx, fullKey, window).Err(); err != nil {
			return true, maxRequests - 1, 0, err
		}
	}

	if int(count) > maxRequests {
		ttl, _ := RedisClient.TTL(ctx, fullKey).Result()
		return false, 0, ttl, nil
	}
	return true, maxRequests - int(count), 0, nil
}
