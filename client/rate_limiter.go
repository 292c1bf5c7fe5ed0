package client

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing requests with a token bucket shared by all
// operations of a client.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter.
// rps is the number of requests per second, burst is the maximum burst size.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request may proceed or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed now without waiting.
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// SetLimit changes the sustained rate.
func (rl *RateLimiter) SetLimit(rps float64) {
	if rps <= 0 {
		rl.limiter.SetLimit(rate.Inf)
		return
	}
	rl.limiter.SetLimit(rate.Limit(rps))
}

// Limit returns the sustained rate in requests per second.
func (rl *RateLimiter) Limit() float64 {
	return float64(rl.limiter.Limit())
}

// Burst returns the bucket size.
func (rl *RateLimiter) Burst() int {
	return rl.limiter.Burst()
}
