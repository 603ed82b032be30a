package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/pkg/format"
)

// Lookback windows for growth reporting.
const (
	Window48h = 48 * time.Hour
	Window28d = 28 * 24 * time.Hour
)

// GrowthService computes per-window growth from snapshot history.
type GrowthService struct {
	snapshots SnapshotStore
}

func NewGrowthService(snapshots SnapshotStore) *GrowthService {
	return &GrowthService{snapshots: snapshots}
}

// Growth computes subscriber and view growth for one window, using the
// nearest snapshot at or before now-window as the baseline. A channel with
// no snapshot that old reports zero growth; that is policy, not an error.
// A store failure degrades the same way so history problems never block
// serving live statistics.
func (s *GrowthService) Growth(ctx context.Context, stats *model.ChannelStats, window time.Duration, now time.Time) model.GrowthSummary {
	cutoff := now.Add(-window)

	base, err := s.snapshots.NearestBefore(ctx, stats.ChannelID, cutoff)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Err(err).Str("channelId", stats.ChannelID).Dur("window", window).
				Msg("growth baseline lookup failed")
		}
		return zeroGrowth()
	}

	return model.GrowthSummary{
		Subscribers: growthResult(stats.SubscriberCount - base.SubscriberCount),
		Views:       growthResult(clampNonNegative(stats.ViewCount - base.ViewCount)),
	}
}

func growthResult(delta int64) model.GrowthResult {
	return model.GrowthResult{Delta: delta, Formatted: format.Delta(delta)}
}

func zeroGrowth() model.GrowthSummary {
	return model.GrowthSummary{Subscribers: growthResult(0), Views: growthResult(0)}
}

// clampNonNegative floors view deltas at zero. Cumulative view counts only
// move backwards on platform-side corrections; subscriber deltas keep their
// sign because losses are real signal.
func clampNonNegative(delta int64) int64 {
	if delta < 0 {
		return 0
	}
	return delta
}
