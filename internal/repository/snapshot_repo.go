package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Append inserts a new snapshot row. Snapshots are append-only; nothing in
// the engine updates or deletes them.
func (r *SnapshotRepo) Append(ctx context.Context, snap *model.Snapshot) error {
	query := `
		INSERT INTO channel_snapshots (channel_id, subscriber_count, view_count, video_count, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		snap.ChannelID, snap.SubscriberCount, snap.ViewCount, snap.VideoCount, snap.CreatedAt,
	)
	return err
}

// NearestBefore returns the most recent snapshot taken at or before cutoff
// (nearest-prior, boundary inclusive). Returns pgx.ErrNoRows when the
// channel has no snapshot that old.
func (r *SnapshotRepo) NearestBefore(ctx context.Context, channelID string, cutoff time.Time) (*model.Snapshot, error) {
	query := `
		SELECT id, channel_id, subscriber_count, view_count, video_count, created_at
		FROM channel_snapshots
		WHERE channel_id = $1 AND created_at <= $2
		ORDER BY created_at DESC
		LIMIT 1`

	var s model.Snapshot
	err := r.pool.QueryRow(ctx, query, channelID, cutoff).Scan(
		&s.ID, &s.ChannelID, &s.SubscriberCount, &s.ViewCount, &s.VideoCount, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DistinctChannelIDs returns every channel that has at least one snapshot.
// This is the sweep population: anything ever fetched successfully.
func (r *SnapshotRepo) DistinctChannelIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT channel_id FROM channel_snapshots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountAll returns the total number of snapshot rows.
func (r *SnapshotRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM channel_snapshots`).Scan(&n)
	return n, err
}
