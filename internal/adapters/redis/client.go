package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/config"
)

// NewClient は設定から Redis クライアントを生成し、疎通確認を行います。
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
