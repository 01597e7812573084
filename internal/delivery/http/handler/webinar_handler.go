package handler

import (
	"errors"
	"strconv"
	"time"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/storage"
	ucwebinar "career-compass/internal/usecase/webinar"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type WebinarHandler struct {
	uc  *ucwebinar.Service
	hub *ws.Hub
}

type createWebinarRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SpeakerName  string    `json:"speakerName"`
	SpeakerTitle string    `json:"speakerTitle"`
	Date         time.Time `json:"date"`
}

func NewWebinarHandler(uc *ucwebinar.Service, hub *ws.Hub) *WebinarHandler {
	return &WebinarHandler{uc: uc, hub: hub}
}

// RegisterPublicRoutes mounts the unauthenticated listing.
func (h *WebinarHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/webinars", h.List)
}

func (h *WebinarHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/webinars", h.Create)
	r.Post("/webinars/:id/register", h.Register)
}

func (h *WebinarHandler) List(c fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *WebinarHandler) Create(c fiber.Ctx) error {
	var req createWebinarRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	w, err := h.uc.Create(c.Context(), storage.NewWebinar{
		Title:        req.Title,
		Description:  req.Description,
		SpeakerName:  req.SpeakerName,
		SpeakerTitle: req.SpeakerTitle,
		Date:         req.Date,
	})
	if err != nil {
		return mapWebinarError(err)
	}

	return response.JSON(c, fiber.StatusCreated, w)
}

func (h *WebinarHandler) Register(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	webinarID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid webinar id", err)
	}

	w, err := h.uc.Register(c.Context(), webinarID, userID)
	if err != nil {
		return mapWebinarError(err)
	}

	h.hub.NotifyWebinarRegistered(w.ID, w.Title, len(w.RegisteredUsers))
	return response.JSON(c, fiber.StatusOK, w)
}

func mapWebinarError(err error) error {
	switch {
	case errors.Is(err, ucwebinar.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Webinar not found", err)
	case errors.Is(err, ucwebinar.ErrAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Already registered for this webinar", err)
	case errors.Is(err, ucwebinar.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
