package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/infopadd/infopadd-go/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL})
}

func TestClient_LoginWithEmail(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  any
		wantErr  error
		wantMsg  string
		wantUser string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			payload: map[string]any{
				"user":  map[string]any{"id": "u1", "displayName": "Ada"},
				"token": "tok-1",
			},
			wantUser: "u1",
		},
		{
			name:    "invalid credentials",
			status:  http.StatusUnauthorized,
			payload: map[string]string{"error": "invalid_credentials", "message": "Invalid credentials"},
			wantErr: core.ErrInvalidCredentials,
			wantMsg: "Invalid credentials",
		},
		{
			name:    "unknown error code",
			status:  http.StatusTeapot,
			payload: map[string]string{"error": "brewing"},
		},
		{
			name:    "message without code still surfaces",
			status:  http.StatusServiceUnavailable,
			payload: map[string]string{"message": "Service briefly down"},
			wantMsg: "Service briefly down",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotPath, gotRequestID string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotRequestID = r.Header.Get("X-Request-ID")
				w.WriteHeader(test.status)
				json.NewEncoder(w).Encode(test.payload)
			})

			login, err := client.LoginWithEmail(context.Background(), "a@b.com", "secret123")

			if gotPath != "/api/auth/sign-in" {
				t.Errorf("path = %q, want /api/auth/sign-in", gotPath)
			}
			if gotRequestID == "" {
				t.Error("X-Request-ID header missing")
			}

			if test.wantUser != "" {
				if err != nil {
					t.Fatalf("LoginWithEmail() error = %v", err)
				}
				if login.User.ID != test.wantUser || login.Token != "tok-1" {
					t.Fatalf("login = %+v", login)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error")
			}
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Errorf("error = %v, want %v", err, test.wantErr)
			}
			if test.wantMsg != "" && core.UserMessage(err) != test.wantMsg {
				t.Errorf("message = %q, want %q", core.UserMessage(err), test.wantMsg)
			}
		})
	}
}

func TestClient_CurrentUser(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		payload   any
		wantUser  bool
		wantErr   bool
		wantToken string
	}{
		{
			name:      "live session",
			status:    http.StatusOK,
			payload:   map[string]any{"user": map[string]any{"id": "u1"}},
			wantUser:  true,
			wantToken: "Bearer tok-1",
		},
		{
			name:    "dead token is no session, not an error",
			status:  http.StatusUnauthorized,
			payload: map[string]string{"error": "invalid_token"},
		},
		{
			name:    "expired session is no session",
			status:  http.StatusUnauthorized,
			payload: map[string]string{"error": "session_expired"},
		},
		{
			name:    "server failure stays an error",
			status:  http.StatusInternalServerError,
			payload: map[string]string{"error": "internal"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotAuth string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(test.status)
				json.NewEncoder(w).Encode(test.payload)
			})

			user, err := client.CurrentUser(context.Background(), "tok-1")

			if (err != nil) != test.wantErr {
				t.Fatalf("CurrentUser() error = %v, wantErr %v", err, test.wantErr)
			}
			if (user != nil) != test.wantUser {
				t.Fatalf("user = %v, wantUser %v", user, test.wantUser)
			}
			if test.wantToken != "" && gotAuth != test.wantToken {
				t.Errorf("Authorization = %q, want %q", gotAuth, test.wantToken)
			}
		})
	}
}

func TestClient_FollowPathAndStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/u2/follow" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"stats": map[string]int{"entries": 2, "points": 10, "followers": 3, "following": 5},
		})
	})

	stats, err := client.Follow(context.Background(), "tok-1", "u2")
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if stats.Following != 5 {
		t.Errorf("Following = %d, want 5", stats.Following)
	}
}

func TestClient_ListEntriesLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want 20", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{{"id": "e1", "text": "hello"}},
		})
	})

	entries, err := client.ListEntries(context.Background(), "tok-1", 20)
	if err != nil || len(entries) != 1 {
		t.Fatalf("ListEntries() = %v, %v", entries, err)
	}
}
