package services

import (
	"context"
	"sync"
	"time"

	"github.com/infopadd/infopadd-go/core"
)

// Test-only fakes for the platform ports. Each exposes error fields for
// behavior injection and counters for call assertions.

// FakeAuthProvider implements core.AuthProvider against an in-memory
// user table keyed by token.
type FakeAuthProvider struct {
	mu sync.Mutex

	loginResult    *core.Login
	registerResult *core.Login
	socialResult   *core.Login
	currentUser    *core.User

	loginErr    error
	registerErr error
	socialErr   error
	logoutErr   error
	currentErr  error

	loginCalls   int
	logoutCalls  int
	currentCalls int
	lastEmail    string
	lastProvider string
	lastToken    string
}

func NewFakeAuthProvider() *FakeAuthProvider {
	return &FakeAuthProvider{}
}

func (f *FakeAuthProvider) LoginWithEmail(_ context.Context, email, _ string) (*core.Login, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.lastEmail = email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *FakeAuthProvider) RegisterWithEmail(_ context.Context, input core.RegisterInput) (*core.Login, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail = input.Email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *FakeAuthProvider) LoginWithSocial(_ context.Context, provider, _ string) (*core.Login, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastProvider = provider
	if f.socialErr != nil {
		return nil, f.socialErr
	}
	return f.socialResult, nil
}

func (f *FakeAuthProvider) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.lastToken = token
	return f.logoutErr
}

func (f *FakeAuthProvider) CurrentUser(_ context.Context, token string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++
	f.lastToken = token
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.currentUser, nil
}

// FakeTokenStore implements core.TokenStore with injectable failures.
type FakeTokenStore struct {
	mu    sync.Mutex
	token string

	loadErr  error
	saveErr  error
	clearErr error

	saveCalls  int
	clearCalls int
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{}
}

func (f *FakeTokenStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return "", f.loadErr
	}
	return f.token, nil
}

func (f *FakeTokenStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	return nil
}

func (f *FakeTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	return nil
}

// FakeConnector implements core.SocialConnector.
type FakeConnector struct {
	name      string
	assertion string
	authErr   error
}

func (f *FakeConnector) Name() string {
	return f.name
}

func (f *FakeConnector) Authorize(context.Context) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.assertion, nil
}

// FakeProfileProvider implements core.ProfileProvider.
type FakeProfileProvider struct {
	result *core.User

	updateErr   error
	emailErr    error
	passwordErr error
	deleteErr   error

	deleteCalls int
}

func (f *FakeProfileProvider) UpdateProfile(_ context.Context, _ string, _ core.ProfileUpdate) (*core.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.result, nil
}

func (f *FakeProfileProvider) UpdateEmail(_ context.Context, _, _, _ string) (*core.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	return f.result, nil
}

func (f *FakeProfileProvider) ChangePassword(_ context.Context, _, _, _ string) error {
	return f.passwordErr
}

func (f *FakeProfileProvider) DeleteAccount(_ context.Context, _, _ string) error {
	f.deleteCalls++
	return f.deleteErr
}

// FakeFeedProvider implements core.FeedProvider.
type FakeFeedProvider struct {
	articles []*core.Article
	entries  []*core.Entry
	entry    *core.Entry
	stats    *core.UserStats

	listErr   error
	createErr error
	followErr error
}

func (f *FakeFeedProvider) ListArticles(_ context.Context, _ string, _ int) ([]*core.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.articles, nil
}

func (f *FakeFeedProvider) ListEntries(_ context.Context, _ string, _ int) ([]*core.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *FakeFeedProvider) CreateEntry(_ context.Context, _ string, _ core.EntryInput) (*core.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.entry, nil
}

func (f *FakeFeedProvider) Follow(_ context.Context, _, _ string) (*core.UserStats, error) {
	if f.followErr != nil {
		return nil, f.followErr
	}
	return f.stats, nil
}

func (f *FakeFeedProvider) Unfollow(_ context.Context, _, _ string) (*core.UserStats, error) {
	if f.followErr != nil {
		return nil, f.followErr
	}
	return f.stats, nil
}

// testUser builds a member record for assertions.
func testUser(id string) *core.User {
	return &core.User{
		ID:          id,
		Email:       id + "@infopadd.test",
		DisplayName: "Member " + id,
		Stats:       core.UserStats{Entries: 2, Points: 10, Followers: 3, Following: 4},
		CreatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
