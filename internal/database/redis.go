package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"issuetracker/internal/config"
)

// NewRedis creates a redis client and verifies connectivity.
func NewRedis(c config.RedisConfig) (*redis.Client, error) {
	if c.Addr == "" {
		return nil, fmt.Errorf("invalid redis config: addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
