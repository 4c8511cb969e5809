package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "favorites:1", []byte("[1,2]")))

	v, ok, err := c.Get(ctx, "favorites:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("[1,2]"), v)

	now = now.Add(59 * time.Second)
	_, ok, _ = c.Get(ctx, "favorites:1")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "favorites:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := NewMemory(time.Second)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Set(ctx, "c", []byte("3")))

	require.NoError(t, c.Delete(ctx, "a", "missing"))
	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)

	now = now.Add(2 * time.Second)
	assert.Equal(t, 2, c.Purge())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, time.Second, c.TTL())
}

func TestMemory_JanitorPurgesUnreadEntries(t *testing.T) {
	ctx := context.Background()
	start := time.Now()
	c := NewMemory(time.Second)
	c.now = func() time.Time { return start }

	for _, k := range []string{"prompt:1", "prompt:2", "prompt:3"} {
		require.NoError(t, c.Set(ctx, k, []byte("reply")))
	}
	require.Equal(t, 3, c.Len())

	later := start.Add(2 * time.Second)
	c.now = func() time.Time { return later }

	janitorCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		c.Janitor(janitorCtx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}

func TestMemory_JanitorKeepsLiveEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewMemory(time.Hour)
	require.NoError(t, c.Set(ctx, "live", []byte("1")))

	done := make(chan struct{})
	go func() {
		c.Janitor(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 1, c.Len())
	// a non-positive interval returns at once
	c.Janitor(context.Background(), 0)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour)

	type plan struct {
		Name string `json:"name"`
	}

	hit, err := GetJSON(ctx, c, "plan", &plan{})
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetJSON(ctx, c, "plan", plan{Name: "Bulk"}))

	var got plan
	hit, err = GetJSON(ctx, c, "plan", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Bulk", got.Name)

	require.NoError(t, c.Set(ctx, "broken", []byte("{")))
	_, err = GetJSON(ctx, c, "broken", &got)
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}

	client := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_HOST") + ":6379"})
	defer client.Close()

	ctx := context.Background()
	c := NewRedis(client, "test:cache", time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
