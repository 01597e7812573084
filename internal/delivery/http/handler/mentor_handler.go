package handler

import (
	"errors"
	"strconv"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/domain/user"
	"career-compass/internal/storage"

	"github.com/gofiber/fiber/v3"
)

type MentorHandler struct {
	store storage.Store
}

type createMentorRequest struct {
	Company        string              `json:"company"`
	Position       string              `json:"position"`
	Specialization []string            `json:"specialization"`
	Availability   map[string][]string `json:"availability"`
}

type updateMentorRequest struct {
	Company        *string              `json:"company"`
	Position       *string              `json:"position"`
	Specialization *[]string            `json:"specialization"`
	Availability   *map[string][]string `json:"availability"`
}

func NewMentorHandler(store storage.Store) *MentorHandler {
	return &MentorHandler{store: store}
}

// RegisterPublicRoutes mounts the verified-mentor listing; unverified
// mentors never appear here.
func (h *MentorHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/mentors", h.List)
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/mentors/me", h.GetMine)
	r.Post("/mentors", h.Create)
	r.Patch("/mentors/me", h.UpdateMine)
	r.Patch("/mentors/:id/verify", h.Verify)
}

func (h *MentorHandler) List(c fiber.Ctx) error {
	out, err := h.store.ListVerifiedMentors(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *MentorHandler) GetMine(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	m, err := h.store.GetMentorByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Mentor profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, m)
}

func (h *MentorHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req createMentorRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	m, err := h.store.CreateMentor(c.Context(), storage.NewMentor{
		UserID:         userID,
		Company:        req.Company,
		Position:       req.Position,
		Specialization: req.Specialization,
		Availability:   req.Availability,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return middleware.NewAppError(fiber.StatusConflict, "Mentor profile already exists", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusCreated, m)
}

func (h *MentorHandler) UpdateMine(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req updateMentorRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	existing, err := h.store.GetMentorByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Mentor profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	// Verified is deliberately absent from the patch: verification is an
	// admin action.
	m, err := h.store.UpdateMentor(c.Context(), existing.ID, storage.MentorPatch{
		Company:        req.Company,
		Position:       req.Position,
		Specialization: req.Specialization,
		Availability:   req.Availability,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, m)
}

func (h *MentorHandler) Verify(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	caller, err := h.store.GetUser(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	if caller.UserType != user.TypeAdmin {
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil)
	}

	mentorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid mentor id", err)
	}

	verified := true
	m, err := h.store.UpdateMentor(c.Context(), mentorID, storage.MentorPatch{Verified: &verified})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Mentor profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, m)
}
