// Package ratelimiter implements per-key token buckets that expire after a
// period of inactivity.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
}

// UserRateLimiter keeps one bucket per key (user id or ip).
type UserRateLimiter struct {
	buckets        map[string]*bucket
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

// New creates a limiter refilling rate tokens per second up to capacity.
// Buckets idle for expirationTime are dropped.
func New(rate, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func (url *UserRateLimiter) touch(key string, b *bucket) {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(url.expirationTime, func() {
		url.mu.Lock()
		if url.buckets[key] == b {
			delete(url.buckets, key)
		}
		url.mu.Unlock()
	})
}

func (url *UserRateLimiter) get(key string) *bucket {
	url.mu.RLock()
	b, exists := url.buckets[key]
	url.mu.RUnlock()
	if exists {
		return b
	}

	url.mu.Lock()
	defer url.mu.Unlock()
	// Double-check after acquiring write lock
	if b, exists = url.buckets[key]; exists {
		return b
	}
	b = &bucket{tokens: url.capacity, lastRefill: time.Now()}
	url.buckets[key] = b
	return b
}

// Allow takes one token from key's bucket, reporting whether one was available.
func (url *UserRateLimiter) Allow(key string) bool {
	b := url.get(key)

	b.mu.Lock()
	defer b.mu.Unlock()
	url.touch(key, b)

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * url.rate
	if b.tokens > url.capacity {
		b.tokens = url.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len is the number of live buckets.
func (url *UserRateLimiter) Len() int {
	url.mu.RLock()
	defer url.mu.RUnlock()
	return len(url.buckets)
}

// Stop cancels all expiration timers.
func (url *UserRateLimiter) Stop() {
	url.mu.Lock()
	defer url.mu.Unlock()
	for _, b := range url.buckets {
		b.mu.Lock()
		if b.timer != nil {
			b.timer.Stop()
		}
		b.mu.Unlock()
	}
}
