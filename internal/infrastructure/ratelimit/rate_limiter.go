package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	ActionSendMessage       = "send_message"
	ActionStartConversation = "start_conversation"
	ActionAuth              = "auth"
)

// Limit describes a token bucket: Burst tokens, refilled one at a time every
// Every.
type Limit struct {
	Burst int
	Every time.Duration
}

// DefaultLimits allow 10 messages per minute, 5 new conversations per hour
// and bursts of 10 sign-in attempts per address.
var DefaultLimits = map[string]Limit{
	ActionSendMessage:       {Burst: 10, Every: 6 * time.Second},
	ActionStartConversation: {Burst: 5, Every: 12 * time.Minute},
	ActionAuth:              {Burst: 10, Every: 30 * time.Second},
}

var fallbackLimit = Limit{Burst: 20, Every: 3 * time.Second}

type tokenBucket struct {
	tokens     int
	limit      Limit
	lastRefill time.Time
	lastUsed   time.Time
}

func (tb *tokenBucket) allow(now time.Time) (bool, time.Duration) {
	if refills := int(now.Sub(tb.lastRefill) / tb.limit.Every); refills > 0 {
		tb.tokens += refills
		if tb.tokens > tb.limit.Burst {
			tb.tokens = tb.limit.Burst
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.limit.Every)
	}
	tb.lastUsed = now

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}
	return false, tb.lastRefill.Add(tb.limit.Every).Sub(now)
}

// RateLimiter keeps one token bucket per user and action. A nil RateLimiter
// allows everything.
type RateLimiter struct {
	limits  map[string]Limit
	buckets map[string]*tokenBucket
	now     func() time.Time
	mutex   sync.Mutex
}

func NewRateLimiter(limits map[string]Limit) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &RateLimiter{
		limits:  limits,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// Allow consumes a token for the user's action. When the bucket is empty it
// returns false and how long until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	if rl == nil {
		return true, 0
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	key := userID + ":" + action
	bucket, ok := rl.buckets[key]
	if !ok {
		limit, ok := rl.limits[action]
		if !ok {
			limit = fallbackLimit
		}
		bucket = &tokenBucket{tokens: limit.Burst, limit: limit, lastRefill: now}
		rl.buckets[key] = bucket
	}
	return bucket.allow(now)
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastUsed) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every 30 minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
