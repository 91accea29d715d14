package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "nations:login_failures:"

// LoginThrottle counts login attempts per identifier in fixed Redis windows.
// A successful login resets the count, so in practice it counts failures.
// Redis being unavailable never locks users out; the throttle then admits
// every attempt and logs the failure.
type LoginThrottle struct {
	client      redis.UniversalClient
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client or non-positive maxAttempts
// disables throttling.
func NewLoginThrottle(client redis.UniversalClient, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window, logger: logger}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.client != nil && t.maxAttempts > 0
}

func throttleKey(identifier string) string {
	return throttleKeyPrefix + strings.ToLower(strings.TrimSpace(identifier))
}

// Admit counts a login attempt for identifier and reports whether it is within
// the limit. The check reads the value INCR returns, so concurrent attempts
// each see a distinct count.
func (t *LoginThrottle) Admit(ctx context.Context, identifier string) bool {
	if !t.enabled() {
		return true
	}
	key := throttleKey(identifier)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(fmt.Errorf("key %s: %w", key, err)))
		return true
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Warn("start login throttle window", zap.Error(err))
		}
	}
	if count == t.maxAttempts+1 {
		t.logger.Info("login throttled", zap.String("identifier", identifier), zap.Duration("window", t.window))
	}
	return count <= t.maxAttempts
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) {
	if !t.enabled() {
		return
	}
	if err := t.client.Del(ctx, throttleKey(identifier)).Err(); err != nil {
		t.logger.Warn("reset login throttle", zap.Error(err))
	}
}
