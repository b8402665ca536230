// Package ratelimit provides the fixed-window request limiter applied per
// client identity. It is a collaborator injected into the HTTP layer; the
// order engine itself knows nothing about it.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

type FixedWindow struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	now       func() time.Time
	clients   map[string]*window
	lastSweep time.Time
}

// NewFixedWindow allows max requests per window per key. nowFn defaults to
// time.Now and exists for tests.
func NewFixedWindow(max int, win time.Duration, nowFn func() time.Time) *FixedWindow {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &FixedWindow{
		max:       max,
		window:    win,
		now:       nowFn,
		clients:   make(map[string]*window),
		lastSweep: nowFn(),
	}
}

// Allow reports whether the request fits the current window for key. When
// rejected it also returns how long until the window resets.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.clients[key] = w
	}

	if w.count < l.max {
		w.count++
		return true, 0
	}
	return false, w.start.Add(l.window).Sub(now)
}

// sweep drops expired windows lazily, at most once per window.
func (l *FixedWindow) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// Tracked returns the number of live client windows.
func (l *FixedWindow) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
