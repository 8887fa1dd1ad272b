package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "widget_session"
	sessionLocalsKey  = "session_id"
)

// SessionMiddleware gives every browser a stable widget session id, issuing
// a new cookie when the current one is missing or malformed.
func SessionMiddleware(maxAge time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := utils.CopyString(ctx.Cookies(SessionCookieName))
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(maxAge),
		})
		ctx.Locals(sessionLocalsKey, sessionID)
		return ctx.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(sessionLocalsKey).(string)
	return id
}
