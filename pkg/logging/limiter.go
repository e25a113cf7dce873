package logging

import (
	"sync"
	"time"
)

// Limiter throttles repetitive log lines per key. A frame loop that logs
// collisions would otherwise write one line per step while two objects
// stay in contact.
type Limiter struct {
	interval time.Duration
	mu       sync.Mutex
	last     map[string]time.Time
}

// NewLimiter allows one entry per key every interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval, last: make(map[string]time.Time)}
}

// Allow reports whether key may be logged at now, and if so records it.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.last[key]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.last[key] = now
	return true
}
