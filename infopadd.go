// Package infopadd is the Go client for the infopadd platform. The heart
// of it is the session store: the single source of truth for who is
// logged in, fed by transition operations that delegate the real work to
// the platform services.
package infopadd

import (
	"github.com/infopadd/infopadd-go/core"
	"github.com/infopadd/infopadd-go/pkg/tokenstore"
	"github.com/infopadd/infopadd-go/services"
)

// interfaces
type (
	AuthProvider    = core.AuthProvider
	ProfileProvider = core.ProfileProvider
	FeedProvider    = core.FeedProvider
	SocialConnector = core.SocialConnector
	TokenStore      = core.TokenStore

	EdgeSessionStorage = core.EdgeSessionStorage
)

// structs
type (
	Config         = core.Config
	SessionStore   = services.SessionStore
	ProfileService = services.ProfileService
	FeedService    = services.FeedService
)

type (
	Session       = core.Session
	Status        = core.Status
	User          = core.User
	UserStats     = core.UserStats
	StatsUpdate   = core.StatsUpdate
	ProfileUpdate = core.ProfileUpdate
	RegisterInput = core.RegisterInput
	Login         = core.Login
	Article       = core.Article
	Entry         = core.Entry
	EntryInput    = core.EntryInput
	AuthError     = core.AuthError
)

const (
	StatusUnknown         = core.StatusUnknown
	StatusChecking        = core.StatusChecking
	StatusAuthenticated   = core.StatusAuthenticated
	StatusUnauthenticated = core.StatusUnauthenticated
)

// Constructors & helpers (convenience re-exports)
var (
	NewMemoryTokenStore = tokenstore.NewMemory
	NewFileTokenStore   = tokenstore.NewFile
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrMalformedLogin     = core.ErrMalformedLogin
)

var (
	ErrNoSession         = core.ErrNoSession
	ErrSessionExpired    = core.ErrSessionExpired
	ErrInvalidToken      = core.ErrInvalidToken
	ErrOperationInFlight = core.ErrOperationInFlight
)

var (
	ErrEmailRequired       = core.ErrEmailRequired
	ErrPasswordRequired    = core.ErrPasswordRequired
	ErrPasswordTooShort    = core.ErrPasswordTooShort
	ErrDisplayNameRequired = core.ErrDisplayNameRequired
	ErrUnknownProvider     = core.ErrUnknownProvider
)

var (
	ErrAuthProviderRequired = core.ErrAuthProviderRequired
	ErrTokenStoreRequired   = core.ErrTokenStoreRequired
	ErrStorageRequired      = core.ErrStorageRequired
)

// Client bundles the session store with the services the screens use.
// Profile and Feed are nil when their providers are not configured.
type Client struct {
	Session *SessionStore
	Profile *ProfileService
	Feed    *FeedService
}

func New(config Config) (*Client, error) {
	store, err := services.NewSessionStore(config)
	if err != nil {
		return nil, err
	}

	client := &Client{Session: store}
	if config.Profile != nil {
		client.Profile = services.NewProfileService(config.Profile, config.Tokens, store)
	}
	if config.Feed != nil {
		client.Feed = services.NewFeedService(config.Feed, config.Tokens, store)
	}
	return client, nil
}
