package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/config"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/db"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/handler"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/metrics"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/middleware"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/repository"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/router"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/service"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config: load failed")
	}

	middleware.InitLogger(cfg.LogLevel, "channeltracker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database: connect failed")
	}
	defer pool.Close()

	if err := db.Migrate(pool, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("database: migrations failed")
	}

	metrics.Init(pool)

	yt, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("youtube: client init failed")
	}

	lock := service.NewSweepLock(cfg.RedisURL, cfg.SweepLockTTL)
	defer lock.Close()

	statsRepo := repository.NewStatsRepo(pool)
	snapshotRepo := repository.NewSnapshotRepo(pool)
	sweepRepo := repository.NewSweepRepo(pool)

	refresher := service.NewRefreshService(yt, statsRepo, snapshotRepo, sweepRepo, lock, cfg.SweepDelay)
	growth := service.NewGrowthService(snapshotRepo)
	channels := service.NewChannelService(statsRepo, snapshotRepo, sweepRepo, youtube.NewResolver(yt), refresher, growth, cfg.CacheTTL)

	worker := service.NewSweepWorker(refresher, cfg.SweepInterval, cfg.SweepOnStart)
	go worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "ChannelTracker API",
		ServerHeader: "ChannelTracker",
	})

	router.Setup(app, &router.Handlers{
		Channel: handler.NewChannelHandler(channels),
		Sweep:   handler.NewSweepHandler(refresher, sweepRepo),
		Stats:   handler.NewStatsHandler(channels),
		Health:  handler.NewHealthHandler(pool, lock),
	}, cfg.CORSOrigins)

	// Drain connections on SIGINT/SIGTERM.
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server: shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("channel tracker starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server: listen failed")
	}
}
