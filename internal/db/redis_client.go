package db

import (
	"context"
	"fmt"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(redisConfig config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     redisConfig.Address(),
		Password: redisConfig.Password.Value(),
		DB:       redisConfig.DB,
	})
}

// Ping checks that the redis server answers.
func Ping(ctx context.Context, client LimitedRedisClient) error {
	err := client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis is not reachable: %w", err)
	}
	return nil
}
