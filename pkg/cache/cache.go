package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/quickai/config"
)

// InitRedis connects to the configured redis instance. Returns nil when no
// address is configured; callers treat a nil client as "caching disabled".
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
