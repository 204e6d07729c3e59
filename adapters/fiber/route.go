// Package fiber is the web form factor's edge: it maps a browser cookie
// to a platform session token and exposes the session routes the web app
// calls. The token itself never reaches the browser.
package fiber

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/infopadd/infopadd-go/core"
	"github.com/infopadd/infopadd-go/pkg/crypto"
)

const (
	defaultBasePath   = "/api/session"
	defaultCookieName = "infopadd_session"
	defaultMaxAge     = 24 * time.Hour
)

// Config wires the edge adapter. Auth and Storage are required.
type Config struct {
	Auth    core.AuthProvider
	Storage core.EdgeSessionStorage

	// Optional
	CookieName   string
	CookieMaxAge time.Duration
	CookieSecure bool
	Logger       *slog.Logger
}

type Adapter struct {
	auth    core.AuthProvider
	storage core.EdgeSessionStorage
	ids     *crypto.IDGenerator
	logger  *slog.Logger

	cookieName string
	maxAge     time.Duration
	secure     bool
}

func New(config Config) (*Adapter, error) {
	if config.Auth == nil {
		return nil, core.ErrAuthProviderRequired
	}
	if config.Storage == nil {
		return nil, core.ErrStorageRequired
	}

	cookieName := config.CookieName
	if cookieName == "" {
		cookieName = defaultCookieName
	}
	maxAge := config.CookieMaxAge
	if maxAge == 0 {
		maxAge = defaultMaxAge
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Adapter{
		auth:       config.Auth,
		storage:    config.Storage,
		ids:        crypto.DefaultIDGenerator(),
		logger:     logger,
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     config.CookieSecure,
	}, nil
}

// RegisterRoutes mounts the session routes under basePath ("" means
// /api/session).
func (a *Adapter) RegisterRoutes(app *fiber.App, basePath string) {
	if basePath == "" {
		basePath = defaultBasePath
	}
	api := app.Group(basePath)

	// Public routes
	api.Post("/sign-up", a.signUp)
	api.Post("/sign-in", a.signIn)
	api.Post("/sign-in/social", a.signInSocial)

	// These resolve the cookie themselves
	api.Post("/sign-out", a.signOut)
	api.Get("/session", a.session)
}
