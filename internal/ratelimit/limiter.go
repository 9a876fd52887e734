// Package ratelimit counts requests per key in fixed windows, either in
// process or in redis so that several instances share one budget.
package ratelimit

import (
	"context"
	"time"
)

// Limiter admits at most limit hits per key within each window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Options struct {
	Limit  int
	Window time.Duration
}
