package core

import (
	"context"
	"time"
)

// Ports define interfaces for external collaborators. The platform
// services behind them (auth, users, articles, entries) are remote APIs;
// the client only ever sees these contracts.

// ============================================
// PLATFORM PORTS (remote services)
// ============================================

// AuthProvider is the authentication service contract. Login-shaped calls
// return the member plus the raw session token the client persists.
type AuthProvider interface {
	LoginWithEmail(ctx context.Context, email, password string) (*Login, error)
	RegisterWithEmail(ctx context.Context, input RegisterInput) (*Login, error)

	// LoginWithSocial exchanges a provider assertion (ID token or access
	// token obtained by a SocialConnector) for a platform session.
	LoginWithSocial(ctx context.Context, provider, assertion string) (*Login, error)

	// Logout is best effort; the caller clears local state regardless.
	Logout(ctx context.Context, token string) error

	// CurrentUser resolves the member behind token. A (nil, nil) return
	// means the token no longer names a session.
	CurrentUser(ctx context.Context, token string) (*User, error)
}

// ProfileProvider covers the settings-screen account mutations. They share
// the User record shape but sit outside the session state machine.
type ProfileProvider interface {
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*User, error)
	UpdateEmail(ctx context.Context, token, newEmail, currentPassword string) (*User, error)
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, token, currentPassword string) error
}

// FeedProvider is the pass-through surface for articles and entries. The
// client applies no ranking or consistency rules; those live server-side.
type FeedProvider interface {
	ListArticles(ctx context.Context, token string, limit int) ([]*Article, error)
	ListEntries(ctx context.Context, token string, limit int) ([]*Entry, error)
	CreateEntry(ctx context.Context, token string, input EntryInput) (*Entry, error)
	Follow(ctx context.Context, token, userID string) (*UserStats, error)
	Unfollow(ctx context.Context, token, userID string) (*UserStats, error)
}

// ============================================
// SOCIAL CONNECTOR PORT
// ============================================

// SocialConnector runs a provider's interactive flow (Google, Facebook)
// and returns the assertion to exchange at the platform. The flow itself -
// browser redirect, native SDK - stays outside this library.
type SocialConnector interface {
	Name() string
	Authorize(ctx context.Context) (assertion string, err error)
}

// ============================================
// TOKEN STORE PORT
// ============================================

// TokenStore persists the session token between launches so the store can
// rehydrate on start. Load returns "" with a nil error when nothing is
// stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ============================================
// EDGE STORAGE PORT (web form factor)
// ============================================

// EdgeSessionStorage maps a browser cookie ID to the platform session
// token on the web edge.
type EdgeSessionStorage interface {
	Put(ctx context.Context, id, token string, expiresAt time.Time) error
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int, error)
}
