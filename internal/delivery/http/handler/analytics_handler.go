package handler

import (
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	ucanalytics "career-compass/internal/usecase/analytics"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc *ucanalytics.Service
}

func NewAnalyticsHandler(uc *ucanalytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/analytics/overview", h.Overview)
}

func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}
