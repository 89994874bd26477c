package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"TripPlanner/pkg/metrics"
	"TripPlanner/storage/redis"
)

const tripLockPrefix = "lock:trip"

// ErrLockNotObtained is returned when another request holds the trip.
var ErrLockNotObtained = errors.New("trip lock not obtained")

// TripLocker serialises mutations of one trip's places across instances.
type TripLocker struct {
	locker  *redislock.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

func NewTripLocker(ttl time.Duration) *TripLocker {
	return &TripLocker{
		locker:  redislock.New(redis.Client()),
		ttl:     ttl,
		retries: 10,
		backoff: 50 * time.Millisecond,
	}
}

// Lock blocks for up to retries*backoff. The returned func releases the lock.
func (l *TripLocker) Lock(ctx context.Context, tripID string) (func(), error) {
	start := time.Now()
	lock, err := l.locker.Obtain(ctx, redis.Key(tripLockPrefix, tripID), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	metrics.Get().RecordLockWait(ctx, time.Since(start).Seconds(), err == nil)

	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain trip lock: %w", err)
	}

	return func() {
		// a fresh context so a cancelled request still releases
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}, nil
}
