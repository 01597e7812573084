package handler

import (
	"errors"
	"strings"
	"time"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/response"
	"career-compass/internal/session"
	ucauth "career-compass/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc           *ucauth.Service
	secureCookie bool
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewAuthHandler builds the auth routes; secureCookie should be true only
// in production so local HTTP development keeps working.
func NewAuthHandler(uc *ucauth.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/user", h.CurrentUser)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, sid, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  req.UserType,
		Phone:     req.Phone,
		Bio:       req.Bio,
	})
	if err != nil {
		return mapAuthError(err)
	}

	h.setSessionCookie(c, sid)
	return response.JSON(c, fiber.StatusCreated, usr)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if req.Username == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Username and password are required", nil)
	}

	usr, sid, err := h.uc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	h.setSessionCookie(c, sid)
	return response.JSON(c, fiber.StatusOK, usr)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sid := c.Cookies(middleware.SessionCookie)
	if err := h.uc.Logout(c.Context(), sid); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	h.clearSessionCookie(c)
	return response.JSON(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) CurrentUser(c fiber.Ctx) error {
	sid := c.Cookies(middleware.SessionCookie)

	usr, err := h.uc.CurrentUser(c.Context(), sid)
	if err != nil {
		return mapAuthError(err)
	}

	return response.JSON(c, fiber.StatusOK, usr)
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	var missing *ucauth.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing required fields: "+strings.Join(missing.Fields, ", "), err)
	case errors.Is(err, ucauth.ErrUsernameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Username already exists", err)
	case errors.Is(err, ucauth.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already exists", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageInvalidCredentials, err)
	case errors.Is(err, ucauth.ErrUnauthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
