package fiber

import (
	"github.com/gofiber/fiber/v3"
)

// RequireSession returns a middleware that resolves the edge cookie and
// stores the member in the context for downstream handlers. Requests
// without a live session get 401.
func (a *Adapter) RequireSession() fiber.Handler {
	return func(c fiber.Ctx) error {
		user, err := a.resolve(c)
		if err != nil {
			return handleAuthError(c, err)
		}

		c.Locals("user", user)
		return c.Next()
	}
}
