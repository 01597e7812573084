package handler

import (
	"errors"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/domain/user"
	"career-compass/internal/storage"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler is a thin CRUD surface over the session user's own
// profile; ownership is inherent because every route is keyed by the
// session user id.
type ProfileHandler struct {
	store storage.Store
}

type profileRequest struct {
	Education    *[]string `json:"education"`
	Skills       *[]string `json:"skills"`
	CareerGoals  *[]string `json:"careerGoals"`
	Achievements *[]string `json:"achievements"`
	Experience   *[]string `json:"experience"`
}

func NewProfileHandler(store storage.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Get)
	r.Post("/profile", h.Create)
	r.Patch("/profile", h.Update)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	p, err := h.store.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if _, err := h.store.GetProfileByUserID(c.Context(), userID); err == nil {
		return middleware.NewAppError(fiber.StatusConflict, "Profile already exists", nil)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	in := storage.NewProfile{
		UserID:       userID,
		Education:    valueOrEmpty(req.Education),
		Skills:       valueOrEmpty(req.Skills),
		CareerGoals:  valueOrEmpty(req.CareerGoals),
		Achievements: valueOrEmpty(req.Achievements),
		Experience:   valueOrEmpty(req.Experience),
	}
	in.Completion = user.Profile{
		Education:    in.Education,
		Skills:       in.Skills,
		CareerGoals:  in.CareerGoals,
		Achievements: in.Achievements,
		Experience:   in.Experience,
	}.Completion()

	p, err := h.store.CreateProfile(c.Context(), in)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return middleware.NewAppError(fiber.StatusConflict, "Profile already exists", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusCreated, p)
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	existing, err := h.store.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	// Merge locally so the completion percentage reflects the post-patch
	// state.
	merged := existing
	if req.Education != nil {
		merged.Education = *req.Education
	}
	if req.Skills != nil {
		merged.Skills = *req.Skills
	}
	if req.CareerGoals != nil {
		merged.CareerGoals = *req.CareerGoals
	}
	if req.Achievements != nil {
		merged.Achievements = *req.Achievements
	}
	if req.Experience != nil {
		merged.Experience = *req.Experience
	}
	completion := merged.Completion()

	p, err := h.store.UpdateProfile(c.Context(), existing.ID, storage.ProfilePatch{
		Education:    req.Education,
		Skills:       req.Skills,
		CareerGoals:  req.CareerGoals,
		Achievements: req.Achievements,
		Experience:   req.Experience,
		Completion:   &completion,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, p)
}

func valueOrEmpty(p *[]string) []string {
	if p == nil {
		return []string{}
	}
	return *p
}
