package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewOptions converts the configuration into go-redis options
func NewOptions(cfg *Config) (*redis.Options, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opt *redis.Options

	if strings.Contains(cfg.Address, "://") {
		parsed, err := redis.ParseURL(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}

		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}

	return opt, nil
}

// New creates a Redis client and checks the connection
func New(ctx context.Context, cfg *Config) (*redis.Client, error) {
	opt, err := NewOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
