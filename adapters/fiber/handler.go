package fiber

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/infopadd/infopadd-go/core"
)

type signInBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type socialBody struct {
	Provider  string `json:"provider"`
	Assertion string `json:"assertion"`
}

// signIn exchanges credentials for a platform session and binds it to a
// fresh cookie.
func (a *Adapter) signIn(c fiber.Ctx) error {
	var body signInBody
	if err := c.Bind().Body(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	login, err := a.auth.LoginWithEmail(c.Context(), body.Email, body.Password)
	if err != nil {
		return handleAuthError(c, err)
	}

	return a.establish(c, http.StatusOK, login)
}

// signUp registers a member and signs them straight in.
func (a *Adapter) signUp(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	login, err := a.auth.RegisterWithEmail(c.Context(), input)
	if err != nil {
		return handleAuthError(c, err)
	}

	return a.establish(c, http.StatusCreated, login)
}

// signInSocial exchanges a provider assertion the web app obtained
// client-side.
func (a *Adapter) signInSocial(c fiber.Ctx) error {
	var body socialBody
	if err := c.Bind().Body(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	login, err := a.auth.LoginWithSocial(c.Context(), body.Provider, body.Assertion)
	if err != nil {
		return handleAuthError(c, err)
	}

	return a.establish(c, http.StatusOK, login)
}

// signOut clears the edge session fail-open: the cookie and the stored
// mapping always go, whatever the platform says.
func (a *Adapter) signOut(c fiber.Ctx) error {
	id := c.Cookies(a.cookieName)
	if id != "" {
		token, err := a.storage.Get(c.Context(), id)
		if err == nil && token != "" {
			if err := a.auth.Logout(c.Context(), token); err != nil {
				a.logger.Warn("platform logout failed", "error", err)
			}
		}
		if err := a.storage.Delete(c.Context(), id); err != nil {
			a.logger.Warn("failed to delete edge session", "error", err)
		}
	}

	a.clearCookie(c)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signed out",
	})
}

// session resolves the cookie to the current member.
func (a *Adapter) session(c fiber.Ctx) error {
	user, err := a.resolve(c)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user": user,
	})
}

// establish stores the token under a new edge session ID and sets the
// cookie. A login with no member record never gets one.
func (a *Adapter) establish(c fiber.Ctx, status int, login *core.Login) error {
	if login == nil || login.User == nil {
		a.logger.Error("login resolved without a member record")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create session",
		})
	}

	id, err := a.ids.NewID()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create session",
		})
	}

	expiresAt := login.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(a.maxAge)
	}

	if err := a.storage.Put(c.Context(), id, login.Token, expiresAt); err != nil {
		a.logger.Error("failed to store edge session", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName,
		Value:    id,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(status).JSON(fiber.Map{
		"user": login.User,
	})
}

// resolve walks cookie -> token -> member. A broken link anywhere is
// ErrNoSession, and a dangling mapping is removed on the way.
func (a *Adapter) resolve(c fiber.Ctx) (*core.User, error) {
	id := c.Cookies(a.cookieName)
	if id == "" {
		return nil, core.ErrNoSession
	}

	token, err := a.storage.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrEdgeSessionMissing) {
			a.clearCookie(c)
			return nil, core.ErrNoSession
		}
		return nil, err
	}

	user, err := a.auth.CurrentUser(c.Context(), token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := a.storage.Delete(c.Context(), id); err != nil {
			a.logger.Warn("failed to delete dangling edge session", "error", err)
		}
		a.clearCookie(c)
		return nil, core.ErrNoSession
	}
	return user, nil
}

func (a *Adapter) clearCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// handleAuthError maps client errors to HTTP responses.
func handleAuthError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": core.UserMessage(err),
	})
}

// mapErrorToStatus maps sentinel errors to HTTP status codes.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionExpired),
		errors.Is(err, core.ErrNoSession):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrDisplayNameRequired),
		errors.Is(err, core.ErrUnknownProvider):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
