package redisclient

import (
	"fmt"

	"giveaway-picker/internal/config"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client from configuration. cfg.URL, when set, takes
// precedence over the discrete fields.
func New(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}
