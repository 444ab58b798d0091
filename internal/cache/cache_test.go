package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/helbflow/internal/config"
)

func TestScheduleKey_ChangesWithUpdateTime(t *testing.T) {
	id := uuid.MustParse("5b8f3c1e-2d4a-4e6b-9c7d-1a2b3c4d5e6f")
	updated := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	first := ScheduleKey(id, updated)
	second := ScheduleKey(id, updated.Add(time.Second))

	assert.Contains(t, first, id.String())
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, ScheduleKey(id, updated))
}

func TestNopCache(t *testing.T) {
	var c Cache = NopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, StatsKey(), map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	assert.ErrorIs(t, c.Get(ctx, StatsKey(), &out), ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, StatsKey()))
	assert.NoError(t, c.Ping(ctx))
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(config.RedisConfig{URL: "redis://:pw@cache:6380/2"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)
	assert.Equal(t, "pw", client.Options().Password)

	client, err = NewRedisClient(config.RedisConfig{Host: "localhost", Port: "6379"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", client.Options().Addr)

	_, err = NewRedisClient(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestRedisCache_UnreachableServerIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client)
	ctx := context.Background()

	var out string
	err := c.Get(ctx, "k", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Error(t, c.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, c.Delete(ctx))
}
