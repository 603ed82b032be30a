package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/metrics"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/pkg/format"
)

// ChannelService is the lookup entry point: serve from cache while the
// entry is valid, refresh through the platform when stale or missing.
type ChannelService struct {
	stats     StatsStore
	snapshots SnapshotStore
	sweeps    SweepStore
	resolver  ChannelResolver
	refresher Refresher
	growth    *GrowthService
	ttl       time.Duration
}

func NewChannelService(stats StatsStore, snapshots SnapshotStore, sweeps SweepStore, resolver ChannelResolver, refresher Refresher, growth *GrowthService, ttl time.Duration) *ChannelService {
	return &ChannelService{
		stats:     stats,
		snapshots: snapshots,
		sweeps:    sweeps,
		resolver:  resolver,
		refresher: refresher,
		growth:    growth,
		ttl:       ttl,
	}
}

// Fresh reports whether a cache entry is still valid at now:
// now - cached_at < ttl. An entry exactly ttl old is stale.
func Fresh(entry *model.ChannelStats, ttl time.Duration, now time.Time) bool {
	return now.Sub(entry.CachedAt) < ttl
}

// Lookup serves channel statistics for any reference form (canonical ID,
// handle, custom URL, full channel URL). FromCache is true only when a
// valid cache entry was served with no upstream call.
//
// A cache hit skips identifier resolution entirely: the disjunctive store
// lookup already matched the reference to its canonical row.
func (s *ChannelService) Lookup(ctx context.Context, ref string) (*model.LookupResponse, error) {
	now := time.Now().UTC()

	entry, err := s.stats.GetByRef(ctx, ref)
	switch {
	case err == nil && Fresh(entry, s.ttl, now):
		metrics.Metrics.LookupsTotal.WithLabelValues("cache").Inc()
		return s.respond(ctx, entry, true, now), nil

	case err == nil:
		// Stale entry: the canonical ID is already known, refresh directly.
		stats, err := s.refresher.Refresh(ctx, entry.ChannelID)
		if err != nil {
			return nil, err
		}
		metrics.Metrics.LookupsTotal.WithLabelValues("live").Inc()
		return s.respond(ctx, stats, false, now), nil

	case errors.Is(err, pgx.ErrNoRows):
		id, err := s.resolver.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		stats, err := s.refresher.Refresh(ctx, id)
		if err != nil {
			return nil, err
		}
		metrics.Metrics.LookupsTotal.WithLabelValues("live").Inc()
		return s.respond(ctx, stats, false, now), nil

	default:
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
}

func (s *ChannelService) respond(ctx context.Context, stats *model.ChannelStats, fromCache bool, now time.Time) *model.LookupResponse {
	return &model.LookupResponse{
		Stats:     *stats,
		Growth48h: s.growth.Growth(ctx, stats, Window48h, now),
		Growth28d: s.growth.Growth(ctx, stats, Window28d, now),
		FormattedCounts: model.FormattedCounts{
			Subscribers: format.Count(stats.SubscriberCount),
			Views:       format.Count(stats.ViewCount),
			Videos:      format.Count(stats.VideoCount),
		},
		FromCache: fromCache,
	}
}

// Overview returns engine-level statistics for operators.
func (s *ChannelService) Overview(ctx context.Context) (*model.OverviewResponse, error) {
	tracked, err := s.stats.CountTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tracked channels: %w", err)
	}

	snapshots, err := s.snapshots.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	last, err := s.sweeps.LatestRun(ctx)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("latest sweep: %w", err)
	}

	return &model.OverviewResponse{
		TrackedChannels: tracked,
		TotalSnapshots:  snapshots,
		LastSweep:       last,
	}, nil
}
