package repository

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// counterTTL keeps yesterday's counter readable briefly, then lets it vanish.
const counterTTL = 48 * time.Hour

// DailyCounterRepository tracks answered questions per (user, calendar date).
// Increment must be atomic: two concurrent quiz requests may legitimately race
// on the same counter. Keying by date makes day rollover a fresh counter
// instead of a conditional reset.
type DailyCounterRepository interface {
	Get(ctx context.Context, userID string, day time.Time) (int, error)
	Increment(ctx context.Context, userID string, day time.Time) (int, error)
}

type dailyCounterRepository struct {
	rdb *goredis.Client
}

func NewDailyCounterRepository(rdb *goredis.Client) DailyCounterRepository {
	return &dailyCounterRepository{rdb: rdb}
}

func counterKey(userID string, day time.Time) string {
	return fmt.Sprintf("quiz:daily:%s:%s", userID, day.UTC().Format("2006-01-02"))
}

func (r *dailyCounterRepository) Get(ctx context.Context, userID string, day time.Time) (int, error) {
	count, err := r.rdb.Get(ctx, counterKey(userID, day)).Int()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("daily counter read: %w", err)
	}
	return count, nil
}

func (r *dailyCounterRepository) Increment(ctx context.Context, userID string, day time.Time) (int, error) {
	key := counterKey(userID, day)
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("daily counter increment: %w", err)
	}
	return int(incr.Val()), nil
}
