package bot

import (
	"sync"
	"time"
)

// RateLimiter implements per-user per-action in-memory rate limiting
// For production, can be swapped to Redis or similar store

type RateLimiter struct {
	mu       sync.Mutex
	lastCall map[int64]map[string]time.Time
	limits   map[string]time.Duration
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		lastCall: make(map[int64]map[string]time.Time),
		limits: map[string]time.Duration{
			"/start":           3 * time.Second,
			"/dashboard":       3 * time.Second,
			"confirm_purchase": 5 * time.Second,
			"buy_product":      3 * time.Second,
		},
	}
}

// IsLimited returns true if user is rate-limited for this action
func (r *RateLimiter) IsLimited(userID int64, action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if r.lastCall[userID] == nil {
		r.lastCall[userID] = make(map[string]time.Time)
	}
	limit, ok := r.limits[action]
	if !ok {
		limit = time.Second // default limit
	}
	last := r.lastCall[userID][action]
	if now.Sub(last) < limit {
		return true
	}
	r.lastCall[userID][action] = now
	return false
}
