package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/youtube"
)

// In-memory fakes for the store and platform contracts, with failure
// injection for the degradation paths.

type fakeStatsStore struct {
	entries     map[string]*model.ChannelStats
	getErr      error
	upsertErr   error
	upsertCalls int
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{entries: make(map[string]*model.ChannelStats)}
}

func (f *fakeStatsStore) GetByRef(_ context.Context, ref string) (*model.ChannelStats, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, e := range f.entries {
		if e.ChannelID == ref ||
			(e.Handle != "" && strings.EqualFold(e.Handle, ref)) ||
			(e.CustomURL != "" && strings.EqualFold(e.CustomURL, ref)) {
			c := *e
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStatsStore) Upsert(_ context.Context, s *model.ChannelStats) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	c := *s
	f.entries[s.ChannelID] = &c
	return nil
}

func (f *fakeStatsStore) CountTracked(context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

type fakeSnapshotStore struct {
	snaps      []model.Snapshot
	appendErr  error
	nearestErr error
	listErr    error
}

func (f *fakeSnapshotStore) Append(_ context.Context, s *model.Snapshot) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.snaps = append(f.snaps, *s)
	return nil
}

func (f *fakeSnapshotStore) NearestBefore(_ context.Context, channelID string, cutoff time.Time) (*model.Snapshot, error) {
	if f.nearestErr != nil {
		return nil, f.nearestErr
	}
	var best *model.Snapshot
	for i := range f.snaps {
		s := &f.snaps[i]
		if s.ChannelID != channelID || s.CreatedAt.After(cutoff) {
			continue
		}
		if best == nil || s.CreatedAt.After(best.CreatedAt) {
			best = s
		}
	}
	if best == nil {
		return nil, pgx.ErrNoRows
	}
	c := *best
	return &c, nil
}

func (f *fakeSnapshotStore) DistinctChannelIDs(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	seen := make(map[string]bool)
	var ids []string
	for _, s := range f.snaps {
		if !seen[s.ChannelID] {
			seen[s.ChannelID] = true
			ids = append(ids, s.ChannelID)
		}
	}
	return ids, nil
}

func (f *fakeSnapshotStore) CountAll(context.Context) (int64, error) {
	return int64(len(f.snaps)), nil
}

type fakeSweepStore struct {
	runs      []model.SweepReport
	insertErr error
}

func (f *fakeSweepStore) InsertRun(_ context.Context, r *model.SweepReport) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.runs = append(f.runs, *r)
	return nil
}

func (f *fakeSweepStore) LatestRun(context.Context) (*model.SweepReport, error) {
	if len(f.runs) == 0 {
		return nil, pgx.ErrNoRows
	}
	r := f.runs[len(f.runs)-1]
	return &r, nil
}

type fakePlatform struct {
	mu    sync.Mutex
	stats map[string]*model.ChannelStats
	errs  map[string]error
	calls int
}

func (f *fakePlatform) ChannelByID(_ context.Context, id string) (*model.ChannelStats, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := f.errs[id]; err != nil {
		return nil, err
	}
	s, ok := f.stats[id]
	if !ok {
		return nil, fmt.Errorf("fetch channel %s: %w", id, youtube.ErrChannelNotFound)
	}
	c := *s
	return &c, nil
}

func (f *fakePlatform) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// gatedPlatform blocks each fetch until the gate is closed, signalling
// entry so tests can interleave deterministically.
type gatedPlatform struct {
	fakePlatform
	entered chan struct{}
	gate    chan struct{}
}

func (p *gatedPlatform) ChannelByID(ctx context.Context, id string) (*model.ChannelStats, error) {
	p.entered <- struct{}{}
	<-p.gate
	return p.fakePlatform.ChannelByID(ctx, id)
}

type fakeResolver struct {
	ids   map[string]string
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.ids[ref]; ok {
		return id, nil
	}
	return "", fmt.Errorf("resolve %s: %w", ref, youtube.ErrChannelNotFound)
}

type fakeRefresher struct {
	stats map[string]*model.ChannelStats
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(_ context.Context, id string) (*model.ChannelStats, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.stats[id]
	if !ok {
		return nil, fmt.Errorf("fetch channel %s: %w", id, youtube.ErrChannelNotFound)
	}
	c := *s
	c.CachedAt = time.Now().UTC()
	return &c, nil
}
