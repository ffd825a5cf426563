package ratelimit

import (
	"sync"
	"time"
)

// ModelLimiter caps model invocations per chat per hour. Each chat
// gets its own token bucket; buckets idle past the cleanup cutoff are
// dropped to bound memory.
type ModelLimiter struct {
	mu         sync.Mutex
	limiters   map[int64]*chatLimiter
	maxPerHour float64
	stopOnce   sync.Once
	stop       chan struct{}
}

type chatLimiter struct {
	limiter  *Limiter
	lastSeen time.Time
}

// cleanupPeriod is how often idle chat buckets are swept.
const cleanupPeriod = 10 * time.Minute

// NewModelLimiter creates a per-chat limiter allowing maxPerHour model
// calls with the same burst capacity, refilled continuously.
func NewModelLimiter(maxPerHour int) *ModelLimiter {
	ml := &ModelLimiter{
		limiters:   make(map[int64]*chatLimiter),
		maxPerHour: float64(maxPerHour),
		stop:       make(chan struct{}),
	}
	go ml.cleanupLoop()
	return ml
}

// Allow reports whether the chat may make another model call, and
// consumes one token when it may.
func (ml *ModelLimiter) Allow(chatID int64) bool {
	ml.mu.Lock()
	cl, ok := ml.limiters[chatID]
	if !ok {
		cl = &chatLimiter{limiter: New(ml.maxPerHour, ml.maxPerHour/3600.0)}
		ml.limiters[chatID] = cl
	}
	cl.lastSeen = time.Now()
	ml.mu.Unlock()

	return cl.limiter.Allow()
}

// ActiveChats returns the number of chats with live buckets.
func (ml *ModelLimiter) ActiveChats() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.limiters)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (ml *ModelLimiter) Stop() {
	ml.stopOnce.Do(func() { close(ml.stop) })
}

func (ml *ModelLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ml.stop:
			return
		case <-ticker.C:
			ml.cleanup()
		}
	}
}

// cleanup drops buckets that have refilled completely and sat unused
// for at least one cleanup period.
func (ml *ModelLimiter) cleanup() {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	for chatID, cl := range ml.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(ml.limiters, chatID)
		}
	}
}
