// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter shared by every instance that points
// at the same Redis. It satisfies middleware.Limiter.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit requests per key in each window.
func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Second
	}
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow increments the counter for key in the current window.
// The counter expires with the window, so idle keys need no cleanup.
func (limiter *RateLimiter) Allow(context stdctx.Context, key string) (bool, error) {
	bucketKey := limiter.BucketKey(key, limiter.now())

	var incr *redis.IntCmd
	_, err := limiter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, bucketKey)
		pipe.Expire(context, bucketKey, limiter.window*2)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis: rate limit: %w", err)
	}

	return incr.Val() <= limiter.limit, nil
}

// BucketKey names the counter for key in the window containing at.
func (limiter *RateLimiter) BucketKey(key string, at time.Time) string {
	bucket := at.UnixNano() / int64(limiter.window)
	return limiter.prefix + key + ":" + strconv.FormatInt(bucket, 10)
}
