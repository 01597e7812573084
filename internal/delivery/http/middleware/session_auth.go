package middleware

import (
	"errors"

	"career-compass/internal/delivery/http/response"
	"career-compass/internal/session"

	"github.com/gofiber/fiber/v3"
)

const (
	// SessionCookie is the name of the cookie carrying the session id.
	SessionCookie = "sid"

	CtxUserIDKey = "user_id"
)

// SessionAuth is the authorization gate: it resolves the sid cookie to a
// user id and stores it in request locals for downstream handlers.
type SessionAuth struct {
	sessions *session.Manager
}

func NewSessionAuth(sessions *session.Manager) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

func (m *SessionAuth) RequireSession() fiber.Handler {
	return func(c fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)

		userID, err := m.sessions.Resolve(c.Context(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthenticated, nil)
			}
			return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}

		c.Locals(CtxUserIDKey, userID)
		return c.Next()
	}
}

// UserID reads the authenticated user id populated by RequireSession.
func UserID(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(CtxUserIDKey).(int64)
	return id, ok
}
