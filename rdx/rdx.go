package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const tokenPrefix = "token:"

// Init connects to Redis. The cache is an accelerator, not a source of
// truth: callers fall back to Mongo on a miss.
func Init(addr, password string) error {
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Conn.Ping(ctx).Err()
}

// CacheToken stores a token-key → user-id mapping.
func CacheToken(ctx context.Context, key, userID string) {
	if Conn == nil {
		return
	}
	Conn.Set(ctx, tokenPrefix+key, userID, 24*time.Hour)
}

// LookupToken returns the cached user id for a token key, or "" on a miss.
func LookupToken(ctx context.Context, key string) string {
	if Conn == nil {
		return ""
	}
	val, err := Conn.Get(ctx, tokenPrefix+key).Result()
	if err != nil {
		return ""
	}
	return val
}

// DropToken evicts a token from the cache, used on logout.
func DropToken(ctx context.Context, key string) {
	if Conn == nil {
		return
	}
	Conn.Del(ctx, tokenPrefix+key)
}

// Publish sends a payload on a Redis channel. Errors are ignored; event
// delivery is best-effort.
func Publish(ctx context.Context, channel string, payload []byte) {
	if Conn == nil {
		return
	}
	Conn.Publish(ctx, channel, payload)
}
