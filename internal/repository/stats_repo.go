package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetByRef returns the cached entry matching the reference on any of its
// three keys: canonical channel ID, handle, or custom URL. Handle and
// custom URL matches are case-insensitive.
func (r *StatsRepo) GetByRef(ctx context.Context, ref string) (*model.ChannelStats, error) {
	query := `
		SELECT channel_id, COALESCE(handle, ''), COALESCE(custom_url, ''),
		       title, description, thumbnail_url, country,
		       subscriber_count, view_count, video_count, cached_at
		FROM channel_stats
		WHERE channel_id = $1
		   OR LOWER(handle) = LOWER($1)
		   OR LOWER(custom_url) = LOWER($1)`

	var s model.ChannelStats
	err := r.pool.QueryRow(ctx, query, ref).Scan(
		&s.ChannelID, &s.Handle, &s.CustomURL,
		&s.Title, &s.Description, &s.ThumbnailURL, &s.Country,
		&s.SubscriberCount, &s.ViewCount, &s.VideoCount, &s.CachedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserts or replaces the entry keyed by canonical channel ID.
// Handle and custom URL are refreshed on every write since they can change
// upstream; empty values are stored as NULL so the unique indexes only
// apply to real aliases.
func (r *StatsRepo) Upsert(ctx context.Context, s *model.ChannelStats) error {
	query := `
		INSERT INTO channel_stats (
			channel_id, handle, custom_url, title, description, thumbnail_url,
			country, subscriber_count, view_count, video_count, cached_at
		)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (channel_id) DO UPDATE SET
			handle           = EXCLUDED.handle,
			custom_url       = EXCLUDED.custom_url,
			title            = EXCLUDED.title,
			description      = EXCLUDED.description,
			thumbnail_url    = EXCLUDED.thumbnail_url,
			country          = EXCLUDED.country,
			subscriber_count = EXCLUDED.subscriber_count,
			view_count       = EXCLUDED.view_count,
			video_count      = EXCLUDED.video_count,
			cached_at        = EXCLUDED.cached_at`

	_, err := r.pool.Exec(ctx, query,
		s.ChannelID, s.Handle, s.CustomURL, s.Title, s.Description, s.ThumbnailURL,
		s.Country, s.SubscriberCount, s.ViewCount, s.VideoCount, s.CachedAt,
	)
	return err
}

// CountTracked returns the number of channels with a cache entry.
func (r *StatsRepo) CountTracked(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM channel_stats`).Scan(&n)
	return n, err
}
