package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllow(t *testing.T) {
	bucket := NewTokenBucket(2, 1, 50*time.Millisecond)

	ok, _ := bucket.Allow()
	assert.True(t, ok)
	ok, _ = bucket.Allow()
	assert.True(t, ok)

	ok, wait := bucket.Allow()
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 20*time.Millisecond)

	ok, _ := bucket.Allow()
	assert.True(t, ok)
	ok, _ = bucket.Allow()
	assert.False(t, ok)

	time.Sleep(30 * time.Millisecond)

	ok, _ = bucket.Allow()
	assert.True(t, ok)
}

func TestTokenBucketCapsAtMax(t *testing.T) {
	bucket := NewTokenBucket(3, 1, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		ok, _ := bucket.Allow()
		assert.True(t, ok)
	}
	ok, _ := bucket.Allow()
	assert.False(t, ok)
}

func TestRateLimiterPerAction(t *testing.T) {
	limiter := NewRateLimiter()

	// send_message allows 10 before refusing.
	for i := 0; i < 10; i++ {
		ok, _ := limiter.Allow("user-1", "send_message")
		assert.True(t, ok, "message %d should be allowed", i)
	}
	ok, wait := limiter.Allow("user-1", "send_message")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	// A different user has their own bucket.
	ok, _ = limiter.Allow("user-2", "send_message")
	assert.True(t, ok)

	// Same user, different action, also independent.
	ok, _ = limiter.Allow("user-1", "typing")
	assert.True(t, ok)
}

func TestCleanupConcurrentWithAllow(t *testing.T) {
	limiter := NewRateLimiter()

	// Allow refills lastRefill under the bucket mutex while Cleanup reads
	// it; run both hot so the race detector has something to catch.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			limiter.Allow("user-1", "typing")
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < 200; i++ {
		limiter.Cleanup()
		time.Sleep(time.Millisecond)
	}
	<-done

	// The bucket saw traffic throughout, so cleanup must not have dropped it.
	tokens, max := limiter.GetStatus("user-1", "typing")
	assert.Equal(t, 30, max)
	assert.GreaterOrEqual(t, tokens, 0)
}

func TestRateLimiterStatus(t *testing.T) {
	limiter := NewRateLimiter()

	tokens, max := limiter.GetStatus("user-1", "typing")
	assert.Equal(t, 0, tokens)
	assert.Equal(t, 0, max)

	limiter.Allow("user-1", "typing")

	tokens, max = limiter.GetStatus("user-1", "typing")
	assert.Equal(t, 29, tokens)
	assert.Equal(t, 30, max)
}
