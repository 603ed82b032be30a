package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

// SweepWorker triggers the scheduled full sweep on a fixed interval.
type SweepWorker struct {
	refresh    *RefreshService
	interval   time.Duration
	runOnStart bool
	stopCh     chan struct{}
}

func NewSweepWorker(refresh *RefreshService, interval time.Duration, runOnStart bool) *SweepWorker {
	return &SweepWorker{
		refresh:    refresh,
		interval:   interval,
		runOnStart: runOnStart,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the periodic sweep loop. With runOnStart it sweeps once
// immediately, then every interval.
func (w *SweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Bool("runOnStart", w.runOnStart).Msg("sweep-worker: starting")

	if w.runOnStart {
		w.tick(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Info().Msg("sweep-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Info().Msg("sweep-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *SweepWorker) Stop() {
	close(w.stopCh)
}

func (w *SweepWorker) tick(ctx context.Context) {
	report, err := w.refresh.SweepAll(ctx, model.SweepTriggerScheduled)
	if err != nil {
		if errors.Is(err, ErrSweepInProgress) {
			log.Warn().Msg("sweep-worker: previous sweep still running, skipping tick")
			return
		}
		log.Error().Err(err).Msg("sweep-worker: sweep failed")
		return
	}

	log.Info().
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("sweep-worker: tick complete")
}
