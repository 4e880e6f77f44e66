package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Quagsire/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis builds the redis client backing quiz sessions and daily attempt counters.
func NewRedis(cfg *config.Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return rdb, nil
}
