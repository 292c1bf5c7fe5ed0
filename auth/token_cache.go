package auth

import (
	"context"
	"sync"
	"time"
)

// refreshFraction is the share of a token's lifetime after which it is
// refreshed rather than reused.
const refreshFraction = 0.8

// fetchedToken is what a token endpoint hands back.
type fetchedToken struct {
	value     string
	issuedAt  time.Time
	expiresAt time.Time
}

type tokenFetcher func(ctx context.Context) (*fetchedToken, error)

// tokenCache holds one token and coalesces concurrent fetches so only a
// single request is in flight at a time.
type tokenCache struct {
	fetch tokenFetcher
	now   func() time.Time

	mu        sync.RWMutex
	token     string
	refreshAt time.Time
	expiresAt time.Time
	pending   chan struct{}
	lastErr   error
}

func newTokenCache(fetch tokenFetcher) *tokenCache {
	return &tokenCache{fetch: fetch, now: time.Now}
}

// get returns a cached token if it has not reached its refresh time,
// otherwise fetches a new one.
func (c *tokenCache) get(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.token != "" && c.now().Before(c.refreshAt) {
		token := c.token
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	// Re-check: another goroutine may have refreshed while we waited.
	if c.token != "" && c.now().Before(c.refreshAt) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}

	if c.pending != nil {
		pending := c.pending
		c.mu.Unlock()
		select {
		case <-pending:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		c.mu.RLock()
		token, err := c.token, c.lastErr
		c.mu.RUnlock()
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
		return c.get(ctx)
	}

	pending := make(chan struct{})
	c.pending = pending
	c.mu.Unlock()

	fetched, err := c.fetch(ctx)

	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.store(fetched)
	}
	c.pending = nil
	close(pending)
	c.mu.Unlock()

	if err != nil {
		return "", err
	}
	return fetched.value, nil
}

// store must be called with the lock held.
func (c *tokenCache) store(t *fetchedToken) {
	issued := t.issuedAt
	if issued.IsZero() {
		issued = c.now()
	}
	c.token = t.value
	c.expiresAt = t.expiresAt
	lifetime := t.expiresAt.Sub(issued)
	if lifetime <= 0 {
		// Unknown lifetime: reuse until told otherwise by a 401.
		c.refreshAt = c.now().Add(100 * 365 * 24 * time.Hour)
		return
	}
	c.refreshAt = issued.Add(time.Duration(float64(lifetime) * refreshFraction))
}

// invalidate drops the cached token.
func (c *tokenCache) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.refreshAt = time.Time{}
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

// expiry returns the expiry of the cached token, zero if none.
func (c *tokenCache) expiry() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}
