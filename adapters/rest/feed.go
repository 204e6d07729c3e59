package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/infopadd/infopadd-go/core"
)

// ListArticles fetches up to limit articles from the feed.
func (c *Client) ListArticles(ctx context.Context, token string, limit int) ([]*core.Article, error) {
	var out struct {
		Articles []*core.Article `json:"articles"`
	}
	path := "/api/articles" + limitQuery(limit)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Articles, nil
}

// ListEntries fetches up to limit entries from the feed.
func (c *Client) ListEntries(ctx context.Context, token string, limit int) ([]*core.Entry, error) {
	var out struct {
		Entries []*core.Entry `json:"entries"`
	}
	path := "/api/entries" + limitQuery(limit)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// CreateEntry publishes a new entry.
func (c *Client) CreateEntry(ctx context.Context, token string, input core.EntryInput) (*core.Entry, error) {
	var entry core.Entry
	if err := c.do(ctx, http.MethodPost, "/api/entries", token, input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Follow follows userID and returns the caller's refreshed counters.
func (c *Client) Follow(ctx context.Context, token, userID string) (*core.UserStats, error) {
	return c.followCall(ctx, http.MethodPost, token, userID)
}

// Unfollow unfollows userID and returns the caller's refreshed counters.
func (c *Client) Unfollow(ctx context.Context, token, userID string) (*core.UserStats, error) {
	return c.followCall(ctx, http.MethodDelete, token, userID)
}

func (c *Client) followCall(ctx context.Context, method, token, userID string) (*core.UserStats, error) {
	var out struct {
		Stats *core.UserStats `json:"stats"`
	}
	path := fmt.Sprintf("/api/users/%s/follow", url.PathEscape(userID))
	if err := c.do(ctx, method, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

func limitQuery(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf("?limit=%d", limit)
}
