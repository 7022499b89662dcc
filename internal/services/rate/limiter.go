package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	postMinuteWindow = time.Minute
	postDayWindow    = 24 * time.Hour
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Limiter throttles ad submissions per seller over two sliding windows.
type Limiter struct {
	store     WindowStore
	perMinute int
	perDay    int
}

func NewLimiter(store WindowStore, perMinute, perDay int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if perDay < 0 {
		perDay = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		perDay:    perDay,
	}
}

// AllowPost consumes one submission slot. When denied it returns the number
// of seconds the caller should wait.
func (l *Limiter) AllowPost(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	if userID == uuid.Nil {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(userID), postMinuteWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perDay > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, dayKey(userID), postDayWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perDay) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

// RetryAfterPost reports the current wait without consuming a slot.
func (l *Limiter) RetryAfterPost(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.WindowState(ctx, minuteKey(userID))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perDay > 0 {
		count, ttl, err := l.store.WindowState(ctx, dayKey(userID))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perDay) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func minuteKey(userID uuid.UUID) string {
	return "rate:posts:min:" + userID.String()
}

func dayKey(userID uuid.UUID) string {
	return "rate:posts:day:" + userID.String()
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
