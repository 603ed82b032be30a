package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

type SweepRepo struct {
	pool *pgxpool.Pool
}

func NewSweepRepo(pool *pgxpool.Pool) *SweepRepo {
	return &SweepRepo{pool: pool}
}

// InsertRun persists a completed sweep summary.
func (r *SweepRepo) InsertRun(ctx context.Context, rep *model.SweepReport) error {
	query := `
		INSERT INTO sweep_runs (triggered_by, total, succeeded, failed, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rep.Trigger, rep.Total, rep.Succeeded, rep.Failed, rep.StartedAt, rep.FinishedAt,
	)
	return err
}

// LatestRun returns the most recently started sweep summary.
func (r *SweepRepo) LatestRun(ctx context.Context) (*model.SweepReport, error) {
	query := `
		SELECT id, triggered_by, total, succeeded, failed, started_at, finished_at
		FROM sweep_runs
		ORDER BY started_at DESC
		LIMIT 1`

	var rep model.SweepReport
	err := r.pool.QueryRow(ctx, query).Scan(
		&rep.ID, &rep.Trigger, &rep.Total, &rep.Succeeded, &rep.Failed,
		&rep.StartedAt, &rep.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
