package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(Options{Limit: 2, Window: time.Minute})
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	now = now.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	l := NewMemoryLimiter(Options{Limit: 10, Window: time.Hour})

	const callers = 50
	var wg sync.WaitGroup
	wg.Add(callers)

	results := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			ok, _ := l.Allow(context.Background(), "k")
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for ok := range results {
		if ok {
			allowed++
		}
	}
	assert.Equal(t, 10, allowed)
}

func TestMemoryLimiter_EvictsOncePerWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(Options{Limit: 1, Window: time.Minute})
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	now = now.Add(2 * time.Minute)
	_, _ = l.Allow(ctx, "b")
	assert.Len(t, l.buckets, 1, "stale bucket evicted")

	now = now.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "c")
	now = now.Add(20 * time.Second)
	_, _ = l.Allow(ctx, "d")
	assert.Len(t, l.buckets, 3, "no scan within the same window")

	now = now.Add(2 * time.Minute)
	_, _ = l.Allow(ctx, "e")
	assert.Len(t, l.buckets, 1)
}
