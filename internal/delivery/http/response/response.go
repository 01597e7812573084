package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "Bad request"
	MessageUnauthenticated     = "Not authenticated"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageInvalidCredentials  = "Invalid credentials"
	MessageInternalServerError = "Internal server error"
)

// JSON writes the payload as-is; entity bodies carry no envelope.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(data)
}

// Error writes the {"error": message} body used by every failure path.
func Error(c fiber.Ctx, status int, message string) error {
	if message == "" {
		message = defaultMessageForStatus(status)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthenticated
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	default:
		return MessageInternalServerError
	}
}
