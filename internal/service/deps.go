package service

import (
	"context"
	"time"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

// Narrow store and platform contracts consumed by the services. The
// pgx-backed repositories and the YouTube client satisfy these; tests
// substitute hand-written fakes.

type StatsStore interface {
	GetByRef(ctx context.Context, ref string) (*model.ChannelStats, error)
	Upsert(ctx context.Context, s *model.ChannelStats) error
	CountTracked(ctx context.Context) (int64, error)
}

type SnapshotStore interface {
	Append(ctx context.Context, snap *model.Snapshot) error
	NearestBefore(ctx context.Context, channelID string, cutoff time.Time) (*model.Snapshot, error)
	DistinctChannelIDs(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
}

type SweepStore interface {
	InsertRun(ctx context.Context, rep *model.SweepReport) error
	LatestRun(ctx context.Context) (*model.SweepReport, error)
}

type Platform interface {
	ChannelByID(ctx context.Context, channelID string) (*model.ChannelStats, error)
}

type ChannelResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

type Refresher interface {
	Refresh(ctx context.Context, channelID string) (*model.ChannelStats, error)
}
