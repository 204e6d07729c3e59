package core

import "log/slog"

// Config wires a client together. Auth and Tokens are required; the rest
// is optional.
type Config struct {
	Auth   AuthProvider
	Tokens TokenStore

	// Optional collaborators
	Profile    ProfileProvider
	Feed       FeedProvider
	Connectors []SocialConnector

	// Logger receives best-effort failure notices (logout, token
	// persistence). Nil means silent.
	Logger *slog.Logger
}
