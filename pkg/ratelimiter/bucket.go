package ratelimiter

import (
	"sync"
	"time"
)

type state struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Bucket is an in-memory token bucket limiter keyed by an arbitrary string,
// the client address in the API. Keys idle for longer than the stale window
// are dropped during later calls.
type Bucket struct {
	cfg        Config
	now        func() time.Time
	staleAfter time.Duration

	mu        sync.Mutex
	keys      map[string]*state
	lastSweep time.Time
}

// Option configures a Bucket.
type Option func(*Bucket)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// WithStaleAfter sets how long an idle key is remembered. Default 1h.
func WithStaleAfter(d time.Duration) Option {
	return func(b *Bucket) {
		if d > 0 {
			b.staleAfter = d
		}
	}
}

// NewBucket creates a limiter for cfg.
func NewBucket(cfg Config, opts ...Option) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &Bucket{
		cfg:        cfg,
		now:        time.Now,
		staleAfter: time.Hour,
		keys:       make(map[string]*state),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastSweep = b.now()

	return b, nil
}

// Allow takes one token for key.
func (b *Bucket) Allow(key string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)

	s, ok := b.keys[key]
	if !ok {
		s = &state{tokens: b.cfg.Capacity, lastRefill: now}
		b.keys[key] = s
	}

	// cap the interval count so a long idle key cannot overflow
	maxIntervals := int64(b.cfg.Capacity/b.cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(s.lastRefill)/b.cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		s.tokens = min(s.tokens+intervals*b.cfg.RefillRate, b.cfg.Capacity)
		s.lastRefill = now
	}

	s.lastAccess = now
	res := Result{Limit: b.cfg.Capacity, Remaining: -1, ResetAt: s.lastRefill.Add(b.cfg.RefillInterval)}

	// a denied call does not dig the bucket deeper
	if s.tokens > 0 {
		s.tokens--
		res.Remaining = s.tokens
	}
	return res
}

// Reset forgets key.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.keys, key)
}

// Len returns the number of tracked keys.
func (b *Bucket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.keys)
}

func (b *Bucket) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < b.staleAfter {
		return
	}
	for key, s := range b.keys {
		if now.Sub(s.lastAccess) > b.staleAfter {
			delete(b.keys, key)
		}
	}
	b.lastSweep = now
}
