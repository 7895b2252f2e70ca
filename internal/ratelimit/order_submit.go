package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/orderdesk/internal/config"
)

const keyOrderSubmit = "order:submit:distributor:%s"

// OrderSubmitLimiter throttles order submissions per distributor. A nil
// limiter (rate limiting disabled) allows everything.
type OrderSubmitLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewOrderSubmitLimiter(cfg config.Config) (*OrderSubmitLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.OrderSubmitRate <= 0 || limitCfg.OrderSubmitBurst <= 0 {
		return nil, errors.New("order submit rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &OrderSubmitLimiter{
		bucket: NewTokenBucket(client),
		rate:   limitCfg.OrderSubmitRate,
		burst:  limitCfg.OrderSubmitBurst,
	}, nil
}

func (l *OrderSubmitLimiter) Allow(ctx context.Context, distributorID string) (*Result, error) {
	if l == nil {
		return &Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyOrderSubmit, strings.TrimSpace(distributorID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
