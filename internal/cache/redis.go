// Package cache holds the Redis-backed view cache and assistant chat
// history.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/atelierhq/atelier/internal/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
