// Package ratelimit provides in-memory per-identifier request limiting.
//
// Two algorithms are available: a fixed window (one counter reset at a fixed
// interval) and a sliding window (only requests within the trailing span
// count). Both are safe for concurrent use. State lives in process memory;
// a multi-process deployment needs a shared store behind the same interface.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of an admission check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   int64 // epoch milliseconds
}

// Limiter admits or rejects one request for the given identifier under the
// supplied (limit, window) pair. The limiter itself is class-agnostic;
// callers pick the pair per route category.
type Limiter interface {
	Admit(identifier string, limit int, window time.Duration) Result
}

type fixedEntry struct {
	count   int
	resetAt time.Time
}

// FixedWindow counts requests per identifier and resets the counter when
// the window elapses.
type FixedWindow struct {
	mu      sync.Mutex
	entries map[string]*fixedEntry
	now     func() time.Time
}

func NewFixedWindow() *FixedWindow {
	return &FixedWindow{
		entries: make(map[string]*fixedEntry),
		now:     time.Now,
	}
}

func (l *FixedWindow) Admit(identifier string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		e = &fixedEntry{count: 1, resetAt: now.Add(window)}
		l.entries[identifier] = e
	} else {
		e.count++
	}

	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   e.count <= limit,
		Remaining: remaining,
		ResetAt:   e.resetAt.UnixMilli(),
	}
}

// Sweep drops entries whose window has fully elapsed. Missing a sweep only
// wastes memory; it never changes admission decisions.
func (l *FixedWindow) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
		}
	}
}

// SlidingWindow keeps the timestamps of recent requests per identifier and
// admits while fewer than limit fall inside the trailing window.
type SlidingWindow struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

func NewSlidingWindow() *SlidingWindow {
	return &SlidingWindow{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (l *SlidingWindow) Admit(identifier string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	stamps := l.windows[identifier]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit {
		l.windows[identifier] = kept
		// oldest surviving request determines when capacity frees up
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   kept[0].Add(window).UnixMilli(),
		}
	}

	kept = append(kept, now)
	l.windows[identifier] = kept
	return Result{
		Allowed:   true,
		Remaining: limit - len(kept),
		ResetAt:   now.Add(window).UnixMilli(),
	}
}

// Sweep drops identifiers with no requests in the last hour.
func (l *SlidingWindow) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-time.Hour)
	for id, stamps := range l.windows {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.windows, id)
		}
	}
}
