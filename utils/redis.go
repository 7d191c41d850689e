package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
)

var RedisClient *redis.Client

// InitRedis connects the cache used for the public mandapam directory.
func InitRedis(cfg *config.Config) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return err
	}

	log.Println("✅ Redis connected")
	return nil
}

// CacheGet returns the cached value for key, or "" on miss/error.
// Cache failures are never surfaced; the caller falls through to the DB.
func CacheGet(ctx context.Context, key string) string {
	if RedisClient == nil {
		return ""
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// CacheSet stores a value with TTL, best effort.
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ Redis SET failed for %s: %v", key, err)
	}
}

// CacheDel drops keys after a write invalidates them, best effort.
func CacheDel(ctx context.Context, keys ...string) {
	if RedisClient == nil || len(keys) == 0 {
		return
	}
	if err := RedisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Redis DEL failed: %v", err)
	}
}
