package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

const growthChannelID = "UCX6OQ3DkcsbYNE6H8uQQuVA"

func snapshotAt(t time.Time, subs, views int64) model.Snapshot {
	return model.Snapshot{
		ChannelID:       growthChannelID,
		SubscriberCount: subs,
		ViewCount:       views,
		CreatedAt:       t,
	}
}

func TestGrowth_UsesNearestPriorSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snaps := &fakeSnapshotStore{snaps: []model.Snapshot{
		snapshotAt(now.Add(-10*24*time.Hour), 100, 1000),
		snapshotAt(now.Add(-5*24*time.Hour), 150, 1500),
		snapshotAt(now.Add(-24*time.Hour), 190, 1900),
	}}
	svc := NewGrowthService(snaps)

	stats := &model.ChannelStats{ChannelID: growthChannelID, SubscriberCount: 200, ViewCount: 2000}

	// Cutoff lands at now-3d: the t-5d snapshot is the nearest prior one,
	// not the newer t-1d and not the older t-10d.
	got := svc.Growth(context.Background(), stats, 3*24*time.Hour, now)
	if got.Subscribers.Delta != 50 {
		t.Errorf("subscriber delta = %d, want 50 (baseline at t-5d)", got.Subscribers.Delta)
	}
	if got.Views.Delta != 500 {
		t.Errorf("view delta = %d, want 500 (baseline at t-5d)", got.Views.Delta)
	}
}

func TestGrowth_BoundaryInclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snaps := &fakeSnapshotStore{snaps: []model.Snapshot{
		// Exactly at the cutoff: must still count as a baseline.
		snapshotAt(now.Add(-Window48h), 100, 1000),
	}}
	svc := NewGrowthService(snaps)

	stats := &model.ChannelStats{ChannelID: growthChannelID, SubscriberCount: 120, ViewCount: 1300}

	got := svc.Growth(context.Background(), stats, Window48h, now)
	if got.Subscribers.Delta != 20 {
		t.Errorf("subscriber delta = %d, want 20 (boundary snapshot included)", got.Subscribers.Delta)
	}
}

func TestGrowth_NoBaselineIsZeroNotError(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snaps := &fakeSnapshotStore{snaps: []model.Snapshot{
		// Only history is younger than the cutoff.
		snapshotAt(now.Add(-time.Hour), 100, 1000),
	}}
	svc := NewGrowthService(snaps)

	stats := &model.ChannelStats{ChannelID: growthChannelID, SubscriberCount: 120, ViewCount: 1300}

	got := svc.Growth(context.Background(), stats, Window48h, now)
	if got.Subscribers.Delta != 0 || got.Views.Delta != 0 {
		t.Errorf("growth = (%d, %d), want zero for insufficient history", got.Subscribers.Delta, got.Views.Delta)
	}
	if got.Subscribers.Formatted != "0" {
		t.Errorf("formatted = %q, want \"0\"", got.Subscribers.Formatted)
	}
}

func TestGrowth_ViewsClampedSubscribersSigned(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snaps := &fakeSnapshotStore{snaps: []model.Snapshot{
		snapshotAt(now.Add(-3*24*time.Hour), 500, 100_000),
	}}
	svc := NewGrowthService(snaps)

	// Both counts dropped since the baseline.
	stats := &model.ChannelStats{ChannelID: growthChannelID, SubscriberCount: 450, ViewCount: 99_000}

	got := svc.Growth(context.Background(), stats, Window48h, now)
	if got.Views.Delta != 0 {
		t.Errorf("view delta = %d, want 0 (negative view growth is clamped)", got.Views.Delta)
	}
	if got.Subscribers.Delta != -50 {
		t.Errorf("subscriber delta = %d, want -50 (losses keep their sign)", got.Subscribers.Delta)
	}
	if got.Subscribers.Formatted != "-50" {
		t.Errorf("formatted = %q, want \"-50\"", got.Subscribers.Formatted)
	}
}

func TestGrowth_StoreFailureDegradesToZero(t *testing.T) {
	snaps := &fakeSnapshotStore{nearestErr: errors.New("connection refused")}
	svc := NewGrowthService(snaps)

	stats := &model.ChannelStats{ChannelID: growthChannelID, SubscriberCount: 100, ViewCount: 1000}

	got := svc.Growth(context.Background(), stats, Window48h, time.Now().UTC())
	if got.Subscribers.Delta != 0 || got.Views.Delta != 0 {
		t.Error("history store failure should degrade to zero growth, not fail the lookup")
	}
}

func TestClampNonNegative(t *testing.T) {
	if got := clampNonNegative(-10); got != 0 {
		t.Errorf("clampNonNegative(-10) = %d, want 0", got)
	}
	if got := clampNonNegative(10); got != 10 {
		t.Errorf("clampNonNegative(10) = %d, want 10", got)
	}
	if got := clampNonNegative(0); got != 0 {
		t.Errorf("clampNonNegative(0) = %d, want 0", got)
	}
}
