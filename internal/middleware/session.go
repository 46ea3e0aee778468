package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gridiron-labs/trivia-exam/internal/config"
)

// SessionCookie is the name of the browsing-session cookie.
const SessionCookie = "trivia_session"

const sessionLocalKey = "session_id"

// Session issues a session cookie when the request carries none (or an
// unusable one) and binds the session ID to the request context. The cookie is
// HttpOnly with SameSite=Lax; Secure comes from configuration.
func Session(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if id == "" || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				MaxAge:   int(cfg.SessionTTL.Seconds()),
				HTTPOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(sessionLocalKey, id)
		return c.Next()
	}
}

// GetSessionID returns the session identifier bound to the active request.
func GetSessionID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if value := c.Locals(sessionLocalKey); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
