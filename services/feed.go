package services

import (
	"context"

	"github.com/infopadd/infopadd-go/core"
)

// FeedService is the thin pass-through to the Articles and Entries
// services. Records flow through untouched; the only local effect is
// keeping the cached user's counters current after a mutation, which is
// where UpdateUserStats earns its keep.
type FeedService struct {
	feed   core.FeedProvider
	tokens core.TokenStore
	store  *SessionStore
}

func NewFeedService(feed core.FeedProvider, tokens core.TokenStore, store *SessionStore) *FeedService {
	return &FeedService{
		feed:   feed,
		tokens: tokens,
		store:  store,
	}
}

func (f *FeedService) token() (string, error) {
	token, err := f.tokens.Load()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", core.ErrNoSession
	}
	return token, nil
}

// ListArticles fetches the article feed.
func (f *FeedService) ListArticles(ctx context.Context, limit int) ([]*core.Article, error) {
	token, err := f.token()
	if err != nil {
		return nil, err
	}
	return f.feed.ListArticles(ctx, token, limit)
}

// ListEntries fetches the entry feed.
func (f *FeedService) ListEntries(ctx context.Context, limit int) ([]*core.Entry, error) {
	token, err := f.token()
	if err != nil {
		return nil, err
	}
	return f.feed.ListEntries(ctx, token, limit)
}

// CreateEntry publishes an entry and bumps the local entries counter.
func (f *FeedService) CreateEntry(ctx context.Context, input core.EntryInput) (*core.Entry, error) {
	token, err := f.token()
	if err != nil {
		return nil, err
	}

	entry, err := f.feed.CreateEntry(ctx, token, input)
	if err != nil {
		return nil, err
	}

	if user := f.store.Session().User; user != nil {
		entries := user.Stats.Entries + 1
		f.store.UpdateUserStats(core.StatsUpdate{Entries: &entries})
	}
	return entry, nil
}

// Follow follows userID and refreshes the cached counters from the
// authoritative response.
func (f *FeedService) Follow(ctx context.Context, userID string) error {
	return f.updateGraph(ctx, userID, f.feed.Follow)
}

// Unfollow unfollows userID and refreshes the cached counters.
func (f *FeedService) Unfollow(ctx context.Context, userID string) error {
	return f.updateGraph(ctx, userID, f.feed.Unfollow)
}

func (f *FeedService) updateGraph(
	ctx context.Context,
	userID string,
	call func(context.Context, string, string) (*core.UserStats, error),
) error {
	if userID == "" {
		return core.ErrUserNotFound
	}

	token, err := f.token()
	if err != nil {
		return err
	}

	stats, err := call(ctx, token, userID)
	if err != nil {
		return err
	}

	if stats != nil {
		f.store.UpdateUserStats(core.StatsUpdate{
			Entries:   &stats.Entries,
			Points:    &stats.Points,
			Followers: &stats.Followers,
			Following: &stats.Following,
		})
	}
	return nil
}
