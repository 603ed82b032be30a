package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/middleware"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/service"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/youtube"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// GetByRef handles GET /api/channels/:ref where :ref is a canonical
// channel ID, an @handle, or a legacy custom URL name.
func (h *ChannelHandler) GetByRef(c fiber.Ctx) error {
	return h.lookup(c, c.Params("ref"))
}

// GetByQuery handles GET /api/channels?ref=X for references that cannot
// travel as a path segment, such as full channel URLs.
func (h *ChannelHandler) GetByQuery(c fiber.Ctx) error {
	ref := fiber.Query[string](c, "ref")
	if ref == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM", "ref query parameter is required")
	}
	return h.lookup(c, ref)
}

func (h *ChannelHandler) lookup(c fiber.Ctx, raw string) error {
	ref, errMsg := middleware.ValidateChannelRef(raw)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REF", errMsg)
	}

	resp, err := h.svc.Lookup(c.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrChannelNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "CHANNEL_NOT_FOUND", "Channel not found")
		case errors.Is(err, youtube.ErrUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "YouTube API is unavailable, try again later")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up channel")
		}
	}

	return c.JSON(resp)
}
