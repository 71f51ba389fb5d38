package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Availability caches the computed open hours per date. All methods are
// nil-safe so the API runs without redis configured; the cache is an
// optimization, never the source of truth.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	if rdb == nil {
		return nil
	}
	return &Availability{rdb: rdb, ttl: ttl}
}

func key(date time.Time) string {
	return "availability:" + date.Format("2006-01-02")
}

func (c *Availability) Get(ctx context.Context, date time.Time) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(date)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}

	var hours []string
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, false
	}
	return hours, true
}

func (c *Availability) Set(ctx context.Context, date time.Time, hours []string) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(hours)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache write failed")
	}
}

// Invalidate drops the cached hours for every affected date. Called after
// any mutation that can change a day's availability.
func (c *Availability) Invalidate(ctx context.Context, dates ...time.Time) {
	if c == nil || len(dates) == 0 {
		return
	}

	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, key(d))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}
