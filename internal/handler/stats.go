package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/service"
)

type StatsHandler struct {
	svc *service.ChannelService
}

func NewStatsHandler(svc *service.ChannelService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetOverview handles GET /api/stats
func (h *StatsHandler) GetOverview(c fiber.Ctx) error {
	overview, err := h.svc.Overview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch statistics",
			},
		})
	}

	return c.JSON(overview)
}
