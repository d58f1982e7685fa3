// Package ratelimit throttles requests per client with token buckets, so
// a single caller cannot exhaust the remote generation quota.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucket is a token bucket; callers hold Limiter.mu.
type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// Info describes the limit applied to one request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages one bucket per client and rule.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter and, when enabled, starts pruning idle buckets.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{Enabled: false}
	}
	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow consumes a token for the client if the route is limited.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	var rule *Rule
	for i := range l.config.Rules {
		if l.config.Rules[i].Matches(path, method) {
			rule = &l.config.Rules[i]
			break
		}
	}
	if rule == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + rule.Method + " " + rule.Path

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = &bucket{
			capacity:   float64(capacity),
			refillRate: float64(rule.Limit) / rule.Window.Seconds(),
			tokens:     float64(capacity),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	b.refill(now)
	b.lastAccess = now

	info := Info{Limit: rule.Limit}
	if b.tokens >= 1 {
		b.tokens--
		info.Allowed = true
	} else {
		info.RetryAfter = time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	}
	info.Remaining = int(b.tokens)
	return info.Allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.prune()
		case <-l.stop:
			return
		}
	}
}

// prune drops buckets idle for longer than IdleTTL
func (l *Limiter) prune() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
