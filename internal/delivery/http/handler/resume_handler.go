package handler

import (
	"errors"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/domain/resume"
	ucresume "career-compass/internal/usecase/resume"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc *ucresume.Service
}

type createResumeRequest struct {
	Title   string         `json:"title"`
	Content resume.Content `json:"content"`
}

type updateResumeRequest struct {
	Title   *string         `json:"title"`
	Content *resume.Content `json:"content"`
}

func NewResumeHandler(uc *ucresume.Service) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/resume", h.Get)
	r.Post("/resume", h.Create)
	r.Patch("/resume", h.Update)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	r, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapResumeError(err)
	}
	return response.JSON(c, fiber.StatusOK, r)
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req createResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	// One resume per user in this surface.
	if _, err := h.uc.Get(c.Context(), userID); err == nil {
		return middleware.NewAppError(fiber.StatusConflict, "Resume already exists", nil)
	} else if !errors.Is(err, ucresume.ErrNotFound) {
		return mapResumeError(err)
	}

	r, err := h.uc.Create(c.Context(), userID, req.Title, req.Content)
	if err != nil {
		return mapResumeError(err)
	}
	return response.JSON(c, fiber.StatusCreated, r)
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req updateResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if req.Title == nil && req.Content == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil)
	}

	r, err := h.uc.Update(c.Context(), userID, req.Title, req.Content)
	if err != nil {
		return mapResumeError(err)
	}
	return response.JSON(c, fiber.StatusOK, r)
}

func mapResumeError(err error) error {
	switch {
	case errors.Is(err, ucresume.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", err)
	case errors.Is(err, ucresume.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
