package handler

import (
	"errors"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/domain/roadmap"
	"career-compass/internal/storage"

	"github.com/gofiber/fiber/v3"
)

type RoadmapHandler struct {
	store storage.Store
}

type createRoadmapRequest struct {
	Milestones       []roadmap.Milestone `json:"milestones"`
	CurrentMilestone int64               `json:"currentMilestone"`
}

type updateRoadmapRequest struct {
	Milestones       *[]roadmap.Milestone `json:"milestones"`
	CurrentMilestone *int64               `json:"currentMilestone"`
}

func NewRoadmapHandler(store storage.Store) *RoadmapHandler {
	return &RoadmapHandler{store: store}
}

func (h *RoadmapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/roadmap", h.Get)
	r.Post("/roadmap", h.Create)
	r.Patch("/roadmap", h.Update)
}

func (h *RoadmapHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	r, err := h.store.GetRoadmapByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Roadmap not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, r)
}

func (h *RoadmapHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req createRoadmapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if err := validateMilestones(req.Milestones); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil)
	}

	if _, err := h.store.GetRoadmapByUserID(c.Context(), userID); err == nil {
		return middleware.NewAppError(fiber.StatusConflict, "Roadmap already exists", nil)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	r, err := h.store.CreateRoadmap(c.Context(), storage.NewRoadmap{
		UserID:           userID,
		Milestones:       req.Milestones,
		CurrentMilestone: req.CurrentMilestone,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusCreated, r)
}

func (h *RoadmapHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req updateRoadmapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if req.Milestones == nil && req.CurrentMilestone == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil)
	}
	if req.Milestones != nil {
		if err := validateMilestones(*req.Milestones); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil)
		}
	}

	existing, err := h.store.GetRoadmapByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Roadmap not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	r, err := h.store.UpdateRoadmap(c.Context(), existing.ID, storage.RoadmapPatch{
		Milestones:       req.Milestones,
		CurrentMilestone: req.CurrentMilestone,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, r)
}

func validateMilestones(milestones []roadmap.Milestone) error {
	for _, m := range milestones {
		if !m.Status.Valid() {
			return errors.New("invalid milestone status: " + string(m.Status))
		}
	}
	return nil
}
