package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/handler"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel *handler.ChannelHandler
	Sweep   *handler.SweepHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	lookupLimit := middleware.NewLookupRateLimiter()
	sweepLimit := middleware.NewSweepRateLimiter()
	statsLimit := middleware.NewStatsRateLimiter()

	// API routes
	api := app.Group("/api")

	// Channel lookup: path form, plus query form for refs that cannot
	// travel as a path segment (full channel URLs)
	api.Get("/channels/:ref", h.Channel.GetByRef, lookupLimit.Handler())
	api.Get("/channels", h.Channel.GetByQuery, lookupLimit.Handler())

	// Sweep routes
	api.Post("/sweep", h.Sweep.Trigger, sweepLimit.Handler())
	api.Get("/sweep/latest", h.Sweep.Latest)

	// Stats routes
	api.Get("/stats", h.Stats.GetOverview, statsLimit.Handler())
}
