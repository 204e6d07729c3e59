// Package rest implements the platform ports against the infopadd HTTP
// API. The API schema is owned by the backend; this adapter only shapes
// requests and maps error payloads onto the client's sentinel errors.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/infopadd/infopadd-go/core"
)

const defaultTimeout = 15 * time.Second

// Config wires a REST client.
type Config struct {
	BaseURL string

	// Optional
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the infopadd API. It implements core.AuthProvider,
// core.ProfileProvider and core.FeedProvider.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var (
	_ core.AuthProvider    = (*Client)(nil)
	_ core.ProfileProvider = (*Client)(nil)
	_ core.FeedProvider    = (*Client)(nil)
)

func New(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL: config.BaseURL,
		http:    httpClient,
		logger:  logger,
	}
}

// apiError is the platform's error payload: a stable code plus the
// message screens may show.
type apiError struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

// do performs one API call. A non-empty token becomes the bearer
// credential; out, when non-nil, receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns an error payload into a sentinel wrapped with the
// user-visible message. A payload with a message but no code still
// surfaces that message.
func (c *Client) decodeError(resp *http.Response) error {
	var payload apiError
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Code == "" {
		if payload.Message != "" {
			return core.NewAuthError(payload.Message, fmt.Errorf("api error (status %d)", resp.StatusCode))
		}
		c.logger.Debug("unstructured api error", "status", resp.StatusCode)
		return fmt.Errorf("api error (status %d)", resp.StatusCode)
	}

	base := sentinelForCode(payload.Code, resp.StatusCode)
	return core.NewAuthError(payload.Message, base)
}

func sentinelForCode(code string, status int) error {
	switch code {
	case "invalid_credentials":
		return core.ErrInvalidCredentials
	case "user_exists":
		return core.ErrUserExists
	case "user_not_found":
		return core.ErrUserNotFound
	case "invalid_token":
		return core.ErrInvalidToken
	case "session_expired":
		return core.ErrSessionExpired
	case "password_too_short":
		return core.ErrPasswordTooShort
	case "unknown_provider":
		return core.ErrUnknownProvider
	default:
		return fmt.Errorf("api error %q (status %d)", code, status)
	}
}
