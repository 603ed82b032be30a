package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/metrics"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

// ErrSweepInProgress is returned when a sweep is requested while one is
// already running.
var ErrSweepInProgress = errors.New("sweep already in progress")

// RefreshService owns the live-fetch pipeline: platform fetch, snapshot
// append, cache upsert. It also runs the paced full sweep.
type RefreshService struct {
	platform  Platform
	stats     StatsStore
	snapshots SnapshotStore
	sweeps    SweepStore
	lock      *SweepLock
	delay     time.Duration
	running   atomic.Bool
}

func NewRefreshService(platform Platform, stats StatsStore, snapshots SnapshotStore, sweeps SweepStore, lock *SweepLock, delay time.Duration) *RefreshService {
	return &RefreshService{
		platform:  platform,
		stats:     stats,
		snapshots: snapshots,
		sweeps:    sweeps,
		lock:      lock,
		delay:     delay,
	}
}

// Refresh fetches live statistics for a canonical channel ID, appends a
// snapshot, then replaces the cache entry stamped with the fetch time.
// The snapshot append is best-effort: a failure there degrades history but
// never suppresses the freshly fetched data. A cache upsert failure fails
// the refresh.
func (s *RefreshService) Refresh(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	stats, err := s.platform.ChannelByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stats.CachedAt = now

	snap := &model.Snapshot{
		ChannelID:       stats.ChannelID,
		SubscriberCount: stats.SubscriberCount,
		ViewCount:       stats.ViewCount,
		VideoCount:      stats.VideoCount,
		CreatedAt:       now,
	}
	if err := s.snapshots.Append(ctx, snap); err != nil {
		log.Warn().Err(err).Str("channelId", channelID).Msg("snapshot append failed")
	} else {
		metrics.Metrics.SnapshotsTotal.Inc()
	}

	if err := s.stats.Upsert(ctx, stats); err != nil {
		return nil, fmt.Errorf("upsert cache entry: %w", err)
	}

	return stats, nil
}

// SweepAll refreshes every channel that has snapshot history, strictly one
// at a time with a pacing delay between fetches to stay under the
// platform's rate quota. Per-channel failures are counted and logged, never
// fatal; only a failed channel enumeration aborts the sweep. At most one
// sweep runs at a time.
//
// Cancelling ctx stops issuing new fetches; the in-flight refresh is
// allowed to complete and the partial summary is still persisted.
func (s *RefreshService) SweepAll(ctx context.Context, trigger string) (*model.SweepReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSweepInProgress
	}
	defer s.running.Store(false)

	if !s.lock.Acquire(ctx) {
		return nil, ErrSweepInProgress
	}
	defer s.lock.Release(context.WithoutCancel(ctx))

	ids, err := s.snapshots.DistinctChannelIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate channels: %w", err)
	}

	report := &model.SweepReport{
		Trigger:   trigger,
		Total:     len(ids),
		StartedAt: time.Now().UTC(),
	}

	// Refreshes run on a detached context so cancellation takes effect at
	// channel boundaries, not mid-fetch.
	detached := context.WithoutCancel(ctx)

	for i, id := range ids {
		if i > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			log.Warn().Int("remaining", len(ids)-i).Msg("sweep cancelled, skipping remaining channels")
			break
		}

		if _, err := s.Refresh(detached, id); err != nil {
			report.Failed++
			metrics.Metrics.SweepChannels.WithLabelValues("failed").Inc()
			log.Error().Err(err).Str("channelId", id).Msg("sweep refresh failed")
			continue
		}
		report.Succeeded++
		metrics.Metrics.SweepChannels.WithLabelValues("succeeded").Inc()
	}

	report.FinishedAt = time.Now().UTC()
	metrics.Metrics.SweepDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	if err := s.sweeps.InsertRun(detached, report); err != nil {
		log.Warn().Err(err).Msg("persist sweep summary failed")
	}

	log.Info().
		Str("trigger", trigger).
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("sweep complete")

	return report, nil
}
