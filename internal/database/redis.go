package database

import (
	"github.com/redis/go-redis/v9"

	"github.com/fitbite/fitbite-backend/config"
)

// NewRedis creates the Redis client used for estimation-response caching
func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
