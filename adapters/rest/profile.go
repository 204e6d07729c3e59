package rest

import (
	"context"
	"net/http"

	"github.com/infopadd/infopadd-go/core"
)

const usersBasePath = "/api/users"

// UpdateProfile patches the editable display fields and returns the
// fresh record.
func (c *Client) UpdateProfile(ctx context.Context, token string, update core.ProfileUpdate) (*core.User, error) {
	var user core.User
	if err := c.do(ctx, http.MethodPatch, usersBasePath+"/me", token, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmail changes the account email after password re-verification.
func (c *Client) UpdateEmail(ctx context.Context, token, newEmail, currentPassword string) (*core.User, error) {
	body := map[string]string{"newEmail": newEmail, "currentPassword": currentPassword}
	var user core.User
	if err := c.do(ctx, http.MethodPost, usersBasePath+"/me/email", token, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword swaps the credential behind the account.
func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, usersBasePath+"/me/password", token, body, nil)
}

// DeleteAccount removes the account after password re-verification.
func (c *Client) DeleteAccount(ctx context.Context, token, currentPassword string) error {
	body := map[string]string{"currentPassword": currentPassword}
	return c.do(ctx, http.MethodDelete, usersBasePath+"/me", token, body, nil)
}
