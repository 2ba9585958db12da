// Package ratelimit provides per-client token-bucket rate limiting for the
// write endpoints. A match refresh claims a generation and fetches the whole
// candidate pool, so unthrottled callers can do real damage.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at refillRate tokens/sec.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   int
	refillRate float64
	lastRefill time.Time
	lastUsed   time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	now := time.Now()
	return &bucket{
		tokens:     float64(capacity),
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: now,
		lastUsed:   now,
	}
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.lastRefill = now
	b.lastUsed = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Info describes the limit state returned alongside each decision, for the
// X-RateLimit response headers.
type Info struct {
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one bucket per (client, rule) pair. Idle buckets are
// reaped by a background goroutine; call Stop to shut it down.
type Limiter struct {
	mu      sync.Mutex
	config  *Config
	buckets map[string]*bucket
	done    chan struct{}
}

// NewLimiter creates a limiter from the given config and starts the
// cleanup goroutine.
func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may perform one more request against the
// given route pattern. Unconfigured routes and exempt clients always pass.
func (l *Limiter) Allow(clientID, route string) (bool, Info) {
	if !l.config.Enabled || l.config.ExemptClients[clientID] {
		return true, Info{}
	}

	rule, ok := l.config.Rules[route]
	if !ok {
		return true, Info{}
	}

	b := l.getBucket(clientID+"|"+route, rule)
	allowed := b.allow()

	b.mu.Lock()
	remaining := int(b.tokens)
	b.mu.Unlock()

	info := Info{Limit: rule.Limit, Remaining: remaining}
	if !allowed {
		info.RetryAfter = time.Duration(1 / rule.refillRate() * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, rule Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.Limit, rule.refillRate())
		l.buckets[key] = b
	}
	return b
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.reapIdle()
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) reapIdle() {
	cutoff := time.Now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastUsed.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.done)
}
