package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/middleware"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/service"
)

type SweepHandler struct {
	refresher *service.RefreshService
	sweeps    service.SweepStore
}

func NewSweepHandler(refresher *service.RefreshService, sweeps service.SweepStore) *SweepHandler {
	return &SweepHandler{refresher: refresher, sweeps: sweeps}
}

// Trigger handles POST /api/sweep — runs a full sweep synchronously and
// returns its summary. The response waits for the sweep to finish, so
// with many tracked channels this call can take a while.
func (h *SweepHandler) Trigger(c fiber.Ctx) error {
	report, err := h.refresher.SweepAll(c.Context(), model.SweepTriggerManual)
	if err != nil {
		if errors.Is(err, service.ErrSweepInProgress) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "SWEEP_IN_PROGRESS", "A sweep is already running")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to run sweep")
	}

	return c.JSON(report)
}

// Latest handles GET /api/sweep/latest — the most recent sweep summary.
func (h *SweepHandler) Latest(c fiber.Ctx) error {
	report, err := h.sweeps.LatestRun(c.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No sweep has run yet")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch sweep report")
	}

	return c.JSON(report)
}
