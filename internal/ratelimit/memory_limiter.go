package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

type MemoryLimiter struct {
	opts Options
	now  func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewMemoryLimiter(opts Options) *MemoryLimiter {
	return &MemoryLimiter{
		opts:    opts,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > m.opts.Window {
		b = &bucket{start: now}
		m.buckets[key] = b
		m.evictExpired(now)
	}

	if b.count >= m.opts.Limit {
		return false, nil
	}

	b.count++
	return true, nil
}

// evictExpired drops stale buckets so the map does not grow with every
// client address ever seen. It scans at most once per window.
func (m *MemoryLimiter) evictExpired(now time.Time) {
	if now.Sub(m.lastSweep) < m.opts.Window {
		return
	}
	m.lastSweep = now

	for k, b := range m.buckets {
		if now.Sub(b.start) > m.opts.Window {
			delete(m.buckets, k)
		}
	}
}
