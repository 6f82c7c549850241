// Package cache holds the CacheStore implementations backing the announcement and featured speaker entries.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// keyPrefix namespaces entries in a shared Redis.
const keyPrefix = "conferencecentral:"

// RedisClient is the subset of *goredis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type redisStore struct {
	rdb RedisClient
	ttl time.Duration
}

// DialRedis connects to addr and pings it before returning the client.
func DialRedis(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisStore returns a CacheStore whose entries expire after ttl (0 keeps them forever).
func NewRedisStore(rdb RedisClient, ttl time.Duration) domain.CacheStore {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
