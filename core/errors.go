package core

import "errors"

// Authentication related errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrMalformedLogin     = errors.New("login response missing member record")
)

// Session errors
var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrOperationInFlight  = errors.New("another auth operation is in flight")
	ErrEdgeSessionMissing = errors.New("edge session not found")
)

// Validation errors (client input)
var (
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrUnknownProvider     = errors.New("unknown social provider")
)

// Config errors (caller-side wiring)
var (
	ErrAuthProviderRequired = errors.New("auth provider is required")
	ErrTokenStoreRequired   = errors.New("token store is required")
	ErrStorageRequired      = errors.New("edge session storage is required")
)

// AuthError is the user-visible failure surfaced on the Session snapshot.
// The Message is what screens render inline; Err keeps the underlying
// cause for errors.Is checks.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError wraps err with the message screens should display. A nil
// err yields a nil result.
func NewAuthError(message string, err error) *AuthError {
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return &AuthError{Message: message, Err: err}
}

// UserMessage extracts the message to surface for err: the AuthError
// message when one is in the chain, err.Error() otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
