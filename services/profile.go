package services

import (
	"context"

	"github.com/infopadd/infopadd-go/core"
)

// ProfileService drives the settings-screen account mutations. These sit
// outside the session state machine but share the User record: every
// successful mutation writes the fresh record back through SetUser so
// screens pick it up on the next snapshot.
type ProfileService struct {
	profile core.ProfileProvider
	tokens  core.TokenStore
	store   *SessionStore
}

func NewProfileService(profile core.ProfileProvider, tokens core.TokenStore, store *SessionStore) *ProfileService {
	return &ProfileService{
		profile: profile,
		tokens:  tokens,
		store:   store,
	}
}

func (p *ProfileService) token() (string, error) {
	token, err := p.tokens.Load()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", core.ErrNoSession
	}
	return token, nil
}

// UpdateProfile applies a partial edit of the display fields.
func (p *ProfileService) UpdateProfile(ctx context.Context, update core.ProfileUpdate) (*core.User, error) {
	token, err := p.token()
	if err != nil {
		return nil, err
	}

	user, err := p.profile.UpdateProfile(ctx, token, update)
	if err != nil {
		return nil, err
	}

	p.store.SetUser(user)
	return user, nil
}

// UpdateEmail changes the account email after re-verifying the password.
func (p *ProfileService) UpdateEmail(ctx context.Context, newEmail, currentPassword string) (*core.User, error) {
	if newEmail == "" {
		return nil, core.ErrEmailRequired
	}
	if currentPassword == "" {
		return nil, core.ErrPasswordRequired
	}

	token, err := p.token()
	if err != nil {
		return nil, err
	}

	user, err := p.profile.UpdateEmail(ctx, token, newEmail, currentPassword)
	if err != nil {
		return nil, err
	}

	p.store.SetUser(user)
	return user, nil
}

// ChangePassword swaps the credential. The current session stays live, so
// the cached user is untouched.
func (p *ProfileService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return core.ErrPasswordRequired
	}
	if len(newPassword) < minPasswordLength {
		return core.ErrPasswordTooShort
	}

	token, err := p.token()
	if err != nil {
		return err
	}

	return p.profile.ChangePassword(ctx, token, currentPassword, newPassword)
}

// DeleteAccount removes the account and then clears the local session the
// same fail-open way Logout does.
func (p *ProfileService) DeleteAccount(ctx context.Context, currentPassword string) error {
	if currentPassword == "" {
		return core.ErrPasswordRequired
	}

	token, err := p.token()
	if err != nil {
		return err
	}

	if err := p.profile.DeleteAccount(ctx, token, currentPassword); err != nil {
		return err
	}

	p.store.Logout(ctx)
	return nil
}
