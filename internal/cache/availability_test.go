package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Availability {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewAvailability(rdb, time.Minute)
}

var day = time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)

func TestAvailability_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, day)
	assert.False(t, ok)

	hours := []string{"10:00", "11:00"}
	c.Set(ctx, day, hours)

	got, ok := c.Get(ctx, day)
	require.True(t, ok)
	assert.Equal(t, hours, got)
}

func TestAvailability_EmptyDayIsCacheable(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, day, []string{})

	got, ok := c.Get(ctx, day)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestAvailability_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	other := day.AddDate(0, 0, 1)
	c.Set(ctx, day, []string{"10:00"})
	c.Set(ctx, other, []string{"11:00"})

	c.Invalidate(ctx, day, other)

	_, ok := c.Get(ctx, day)
	assert.False(t, ok)
	_, ok = c.Get(ctx, other)
	assert.False(t, ok)
}

func TestAvailability_KeysArePerDay(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, day, []string{"10:00"})
	c.Invalidate(ctx, day.AddDate(0, 0, 1))

	got, ok := c.Get(ctx, day)
	require.True(t, ok)
	assert.Equal(t, []string{"10:00"}, got)
}

func TestAvailability_NilSafe(t *testing.T) {
	var c *Availability
	ctx := context.Background()

	// Every operation must be a no-op without redis configured.
	c.Set(ctx, day, []string{"10:00"})
	c.Invalidate(ctx, day)
	_, ok := c.Get(ctx, day)
	assert.False(t, ok)

	assert.Nil(t, NewAvailability(nil, time.Minute))
}
