package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const sweepLockKey = "channeltracker:sweep:lock"

// SweepLock is a best-effort cross-instance lease that keeps two deployments
// from sweeping the platform at the same time, which would defeat the pacing
// guarantee. Coordination is advisory: when Redis is not configured or
// unreachable, locking degrades to the in-process guard only.
type SweepLock struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSweepLock creates the lease manager. An empty redisURL or a failed
// connection yields a lock with a nil client, so Acquire always succeeds.
func NewSweepLock(redisURL string, ttl time.Duration) *SweepLock {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, sweep lease disabled")
		return &SweepLock{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, sweep lease disabled")
		return &SweepLock{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, sweep lease disabled")
		return &SweepLock{ttl: ttl}
	}

	log.Info().Msg("redis: connected, sweep lease enabled")
	return &SweepLock{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (l *SweepLock) Client() *redis.Client {
	return l.rdb
}

// Acquire takes the lease. Returns false when another instance holds it.
// Redis errors degrade to acquired: a sweep must still run when the
// coordination layer is down.
func (l *SweepLock) Acquire(ctx context.Context) bool {
	if l.rdb == nil {
		return true
	}

	ok, err := l.rdb.SetNX(ctx, sweepLockKey, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		log.Warn().Err(err).Msg("sweep lease acquire failed, proceeding without it")
		return true
	}
	return ok
}

// Release drops the lease. The TTL reclaims it eventually if this is never
// reached.
func (l *SweepLock) Release(ctx context.Context) {
	if l.rdb == nil {
		return
	}
	if err := l.rdb.Del(ctx, sweepLockKey).Err(); err != nil {
		log.Warn().Err(err).Msg("sweep lease release failed")
	}
}

// Close shuts down the Redis connection.
func (l *SweepLock) Close() error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
