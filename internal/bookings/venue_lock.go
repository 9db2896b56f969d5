package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuebook/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrVenueLocked is returned when another request holds the venue past the wait budget
var ErrVenueLocked = errors.New("venue is locked by another booking request")

// VenueLocker serializes booking attempts for one venue across processes.
// The database row lock stays the authority; this only sheds contention early.
type VenueLocker interface {
	Acquire(ctx context.Context, venueID uuid.UUID) (release func(), err error)
}

// KEYS[1] = lock key, ARGV[1] = owner token, ARGV[2] = ttl ms
var acquireScript = redis.NewScript(`
if redis.call("SET", KEYS[1], ARGV[1], "NX", "PX", ARGV[2]) then
    return 1
end
return 0
`)

// KEYS[1] = lock key, ARGV[1] = owner token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisVenueLock struct {
	redis *redis.Client
	ttl   time.Duration
	wait  time.Duration
	retry time.Duration
}

func NewRedisVenueLock(client *redis.Client, ttl, wait time.Duration) *RedisVenueLock {
	return &RedisVenueLock{
		redis: client,
		ttl:   ttl,
		wait:  wait,
		retry: 50 * time.Millisecond,
	}
}

func lockKey(venueID uuid.UUID) string {
	return constants.CACHE_PREFIX + ":bookings:venue_lock:" + venueID.String()
}

// Acquire polls until the lock is free or the wait budget is spent
func (l *RedisVenueLock) Acquire(ctx context.Context, venueID uuid.UUID) (func(), error) {
	key := lockKey(venueID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := acquireScript.Run(ctx, l.redis, []string{key}, token, l.ttl.Milliseconds()).Int()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire venue lock: %w", err)
		}
		if ok == 1 {
			return func() {
				// the request context may already be canceled; release on a short detached one
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.redis, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrVenueLocked
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

type noopVenueLock struct{}

// NewNoopVenueLock never blocks; used when Redis locking is disabled
func NewNoopVenueLock() VenueLocker {
	return noopVenueLock{}
}

func (noopVenueLock) Acquire(ctx context.Context, venueID uuid.UUID) (func(), error) {
	return func() {}, nil
}
