package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/infopadd/infopadd-go/core"
)

const authBasePath = "/api/auth"

// LoginWithEmail exchanges credentials for a session.
func (c *Client) LoginWithEmail(ctx context.Context, email, password string) (*core.Login, error) {
	body := map[string]string{"email": email, "password": password}
	var login core.Login
	if err := c.do(ctx, http.MethodPost, authBasePath+"/sign-in", "", body, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

// RegisterWithEmail creates an account and returns its first session.
func (c *Client) RegisterWithEmail(ctx context.Context, input core.RegisterInput) (*core.Login, error) {
	var login core.Login
	if err := c.do(ctx, http.MethodPost, authBasePath+"/sign-up", "", input, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

// LoginWithSocial exchanges a provider assertion for a session.
func (c *Client) LoginWithSocial(ctx context.Context, provider, assertion string) (*core.Login, error) {
	body := map[string]string{"provider": provider, "assertion": assertion}
	var login core.Login
	if err := c.do(ctx, http.MethodPost, authBasePath+"/sign-in/social", "", body, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

// Logout invalidates the session behind token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, authBasePath+"/sign-out", token, nil, nil)
}

// CurrentUser resolves the member behind token. A token the platform no
// longer recognizes is reported as (nil, nil): no session rather than a
// failure, so startup rehydration stays silent.
func (c *Client) CurrentUser(ctx context.Context, token string) (*core.User, error) {
	var out struct {
		User *core.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, authBasePath+"/session", token, nil, &out)
	if err != nil {
		if errors.Is(err, core.ErrInvalidToken) || errors.Is(err, core.ErrSessionExpired) {
			return nil, nil
		}
		return nil, err
	}
	return out.User, nil
}
