package services

import (
	"context"
	"errors"
	"testing"

	"github.com/infopadd/infopadd-go/core"
)

func newTestProfileService(t *testing.T, profile *FakeProfileProvider, tokens *FakeTokenStore) (*ProfileService, *SessionStore) {
	t.Helper()
	store := newTestStore(t, NewFakeAuthProvider(), tokens)
	return NewProfileService(profile, tokens, store), store
}

func TestProfileService_UpdateProfile(t *testing.T) {
	name := "Renamed"

	tests := []struct {
		name      string
		token     string
		updateErr error
		wantErr   error
	}{
		{name: "success writes back through SetUser", token: "tok-1"},
		{name: "no session", token: "", wantErr: core.ErrNoSession},
		{name: "provider failure leaves cached user alone", token: "tok-1", updateErr: errors.New("boom"), wantErr: errors.New("boom")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			updated := testUser("u1")
			updated.DisplayName = name

			profile := &FakeProfileProvider{result: updated, updateErr: test.updateErr}
			tokens := NewFakeTokenStore()
			tokens.token = test.token
			service, store := newTestProfileService(t, profile, tokens)
			store.SetUser(testUser("u1"))

			user, err := service.UpdateProfile(context.Background(), core.ProfileUpdate{DisplayName: &name})

			if (err != nil) != (test.wantErr != nil) {
				t.Fatalf("UpdateProfile() error = %v, wantErr %v", err, test.wantErr)
			}
			cached := store.Session().User
			if test.wantErr == nil {
				if user.DisplayName != name {
					t.Errorf("DisplayName = %q, want %q", user.DisplayName, name)
				}
				if cached.DisplayName != name {
					t.Errorf("cached DisplayName = %q, SetUser write-back missing", cached.DisplayName)
				}
			} else if cached.DisplayName == name {
				t.Error("failed update must not touch the cached user")
			}
		})
	}
}

func TestProfileService_UpdateEmail_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "missing email", email: "", password: "secret123", wantErr: core.ErrEmailRequired},
		{name: "missing password", email: "n@b.com", password: "", wantErr: core.ErrPasswordRequired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := NewFakeTokenStore()
			tokens.token = "tok-1"
			service, _ := newTestProfileService(t, &FakeProfileProvider{}, tokens)

			_, err := service.UpdateEmail(context.Background(), test.email, test.password)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("UpdateEmail() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestProfileService_ChangePassword(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		next        string
		providerErr error
		wantErr     error
	}{
		{name: "success", current: "old-secret", next: "new-secret"},
		{name: "new password too short", current: "old-secret", next: "five5", wantErr: core.ErrPasswordTooShort},
		{name: "missing current", current: "", next: "new-secret", wantErr: core.ErrPasswordRequired},
		{name: "wrong current password", current: "bad", next: "new-secret", providerErr: core.ErrInvalidCredentials, wantErr: core.ErrInvalidCredentials},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := NewFakeTokenStore()
			tokens.token = "tok-1"
			service, _ := newTestProfileService(t, &FakeProfileProvider{passwordErr: test.providerErr}, tokens)

			err := service.ChangePassword(context.Background(), test.current, test.next)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("ChangePassword() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestProfileService_DeleteAccount(t *testing.T) {
	t.Run("success clears the session fail-open", func(t *testing.T) {
		profile := &FakeProfileProvider{}
		tokens := NewFakeTokenStore()
		tokens.token = "tok-1"
		service, store := newTestProfileService(t, profile, tokens)
		store.SetUser(testUser("u1"))

		if err := service.DeleteAccount(context.Background(), "secret123"); err != nil {
			t.Fatalf("DeleteAccount() error = %v", err)
		}

		state := store.Session()
		if state.User != nil || state.IsAuthenticated {
			t.Fatalf("state after deletion = %+v, want logged out", state)
		}
		if got, _ := tokens.Load(); got != "" {
			t.Errorf("token still stored after deletion: %q", got)
		}
	})

	t.Run("provider failure keeps the session", func(t *testing.T) {
		profile := &FakeProfileProvider{deleteErr: core.ErrInvalidCredentials}
		tokens := NewFakeTokenStore()
		tokens.token = "tok-1"
		service, store := newTestProfileService(t, profile, tokens)
		store.SetUser(testUser("u1"))

		if err := service.DeleteAccount(context.Background(), "wrong"); !errors.Is(err, core.ErrInvalidCredentials) {
			t.Fatalf("DeleteAccount() error = %v, want %v", err, core.ErrInvalidCredentials)
		}
		if !store.Session().IsAuthenticated {
			t.Error("failed deletion must not log the member out")
		}
	})
}
