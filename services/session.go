package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/infopadd/infopadd-go/core"
)

const minPasswordLength = 6

// SessionStore is the single source of truth for "who is logged in, is an
// auth call in flight, and what failed". Every mutation goes through one
// of the transition operations below, so consumers always observe a
// snapshot where IsAuthenticated and User agree.
//
// All credential and network work is delegated to the AuthProvider; the
// store only manages the state around it. Every async operation follows
// the same three-phase contract: mark loading, delegate, apply the result.
// A failure can never leave IsLoading stuck true.
type SessionStore struct {
	auth       core.AuthProvider
	tokens     core.TokenStore
	connectors map[string]core.SocialConnector
	logger     *slog.Logger

	mu       sync.Mutex
	state    core.Session
	inFlight bool
	epoch    uint64

	subs    map[int]func(core.Session)
	nextSub int
}

// NewSessionStore wires a store from config. Auth and Tokens are
// required.
func NewSessionStore(config core.Config) (*SessionStore, error) {
	if config.Auth == nil {
		return nil, core.ErrAuthProviderRequired
	}
	if config.Tokens == nil {
		return nil, core.ErrTokenStoreRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	connectors := make(map[string]core.SocialConnector, len(config.Connectors))
	for _, c := range config.Connectors {
		connectors[c.Name()] = c
	}

	return &SessionStore{
		auth:       config.Auth,
		tokens:     config.Tokens,
		connectors: connectors,
		logger:     logger,
		state:      core.InitialSession(),
		subs:       make(map[int]func(core.Session)),
	}, nil
}

// Session returns the current snapshot. The User is copied so callers can
// hold onto it across later transitions.
func (s *SessionStore) Session() core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSession(s.state)
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned function unsubscribes.
func (s *SessionStore) Subscribe(fn func(core.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// LoginWithEmail authenticates with email and password. On success the
// session token is persisted and the snapshot becomes authenticated; on
// failure the snapshot keeps its previous user (nil when logged out) and
// carries the user-visible error message.
func (s *SessionStore) LoginWithEmail(ctx context.Context, email, password string) (*core.User, error) {
	if email == "" {
		return nil, core.ErrEmailRequired
	}
	if password == "" {
		return nil, core.ErrPasswordRequired
	}

	epoch, err := s.begin(false)
	if err != nil {
		return nil, err
	}

	login, err := s.auth.LoginWithEmail(ctx, email, password)
	return s.applyLogin(epoch, login, err)
}

// RegisterWithEmail creates an account and signs it in. Confirm-password
// equality is the caller's check; the store only enforces the platform
// password policy.
func (s *SessionStore) RegisterWithEmail(ctx context.Context, input core.RegisterInput) (*core.User, error) {
	if input.Email == "" {
		return nil, core.ErrEmailRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, core.ErrPasswordTooShort
	}
	if input.DisplayName == "" {
		return nil, core.ErrDisplayNameRequired
	}

	epoch, err := s.begin(false)
	if err != nil {
		return nil, err
	}

	login, err := s.auth.RegisterWithEmail(ctx, input)
	return s.applyLogin(epoch, login, err)
}

// LoginWithGoogle runs the registered Google connector and exchanges its
// assertion for a platform session.
func (s *SessionStore) LoginWithGoogle(ctx context.Context) (*core.User, error) {
	return s.loginWithConnector(ctx, "google")
}

// LoginWithFacebook runs the registered Facebook connector and exchanges
// its assertion for a platform session.
func (s *SessionStore) LoginWithFacebook(ctx context.Context) (*core.User, error) {
	return s.loginWithConnector(ctx, "facebook")
}

// loginWithConnector applies the same pending/fulfilled/rejected contract
// as the email operations, so a cancelled provider flow can never leave
// the loading flag stuck.
func (s *SessionStore) loginWithConnector(ctx context.Context, name string) (*core.User, error) {
	connector, ok := s.connectors[name]
	if !ok {
		return nil, core.ErrUnknownProvider
	}

	epoch, err := s.begin(false)
	if err != nil {
		return nil, err
	}

	assertion, err := connector.Authorize(ctx)
	if err != nil {
		return s.applyLogin(epoch, nil, err)
	}

	login, err := s.auth.LoginWithSocial(ctx, name, assertion)
	return s.applyLogin(epoch, login, err)
}

// Logout clears the session. It is fail-open: local state and the token
// store are cleared no matter what the platform call returns, and any
// operation still in flight is superseded so its late result is dropped.
func (s *SessionStore) Logout(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		s.logger.Warn("failed to load token during logout", "error", err)
	}

	s.mu.Lock()
	s.epoch++
	s.inFlight = false
	s.state = core.Session{
		User:            nil,
		IsAuthenticated: false,
		IsLoading:       false,
		Error:           "",
		Status:          core.StatusUnauthenticated,
	}
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear stored token", "error", err)
	}
	if token != "" {
		if err := s.auth.Logout(ctx, token); err != nil {
			s.logger.Warn("platform logout failed", "error", err)
		}
	}
}

// CheckAuthState rehydrates the session once at startup from the
// persisted token. A missing token, an expired session, or any provider
// failure resolves to unauthenticated without surfacing an error.
func (s *SessionStore) CheckAuthState(ctx context.Context) (*core.User, error) {
	epoch, err := s.begin(true)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Load()
	if err != nil {
		s.logger.Warn("failed to load stored token", "error", err)
		s.applyUnauthenticated(epoch)
		return nil, nil
	}
	if token == "" {
		s.applyUnauthenticated(epoch)
		return nil, nil
	}

	user, err := s.auth.CurrentUser(ctx, token)
	if err != nil || user == nil {
		// A dead token is no session; drop it so the next start skips
		// the round trip.
		if err != nil {
			s.logger.Debug("stored token rejected", "error", err)
		}
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear stored token", "error", clearErr)
		}
		s.applyUnauthenticated(epoch)
		return nil, nil
	}

	s.applyUser(epoch, user)
	return user, nil
}

// SetUser overwrites the cached user, typically after a profile edit.
// Passing nil drops to unauthenticated. Synchronous, cannot fail.
func (s *SessionStore) SetUser(user *core.User) {
	s.mu.Lock()
	s.epoch++
	s.inFlight = false
	s.state.User = cloneUser(user)
	s.state.IsAuthenticated = user != nil
	s.state.IsLoading = false
	if user != nil {
		s.state.Status = core.StatusAuthenticated
	} else {
		s.state.Status = core.StatusUnauthenticated
	}
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
}

// UpdateUserStats merges the non-nil fields into the cached user's stats.
// A no-op when nobody is logged in.
func (s *SessionStore) UpdateUserStats(update core.StatsUpdate) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return
	}
	s.state.User.Stats = update.Merge(s.state.User.Stats)
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
}

// begin starts an async transition: rejects re-entrant calls, bumps the
// epoch so a superseded completion is dropped, and raises the loading
// flag. checking marks the startup rehydration phase.
func (s *SessionStore) begin(checking bool) (uint64, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return 0, core.ErrOperationInFlight
	}
	s.inFlight = true
	s.epoch++
	epoch := s.epoch
	s.state.IsLoading = true
	s.state.Error = ""
	if checking {
		s.state.Status = core.StatusChecking
	}
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
	return epoch, nil
}

// applyLogin finishes a login-shaped transition. Failure keeps the
// previous user and records the user-visible message; success flips the
// snapshot to authenticated and then persists the token. The persist only
// happens when the completion was not superseded, so a login resolving
// after Logout cannot resurrect its token.
//
// A login with no member record counts as a failure: applying it would
// leave the snapshot authenticated with nobody behind it.
func (s *SessionStore) applyLogin(epoch uint64, login *core.Login, err error) (*core.User, error) {
	if err == nil && (login == nil || login.User == nil) {
		err = core.ErrMalformedLogin
	}
	if err != nil {
		s.applyError(epoch, err)
		return nil, err
	}

	if !s.applyUser(epoch, login.User) {
		return login.User, nil
	}

	if saveErr := s.tokens.Save(login.Token); saveErr != nil {
		// The session is still live server-side; only rehydration after a
		// restart is affected.
		s.logger.Warn("failed to persist session token", "error", saveErr)
	}
	return login.User, nil
}

func (s *SessionStore) applyUser(epoch uint64, user *core.User) bool {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return false
	}
	s.inFlight = false
	s.state.User = cloneUser(user)
	s.state.IsAuthenticated = s.state.User != nil
	s.state.IsLoading = false
	s.state.Error = ""
	if s.state.IsAuthenticated {
		s.state.Status = core.StatusAuthenticated
	} else {
		s.state.Status = core.StatusUnauthenticated
	}
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
	return true
}

func (s *SessionStore) applyUnauthenticated(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.inFlight = false
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.state.IsLoading = false
	s.state.Error = ""
	s.state.Status = core.StatusUnauthenticated
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *SessionStore) applyError(epoch uint64, err error) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.inFlight = false
	s.state.IsLoading = false
	s.state.Error = core.UserMessage(err)
	// User and IsAuthenticated stay as they were: a failed attempt does
	// not log anyone out.
	if s.state.Status == core.StatusChecking || s.state.Status == core.StatusUnknown {
		s.state.Status = core.StatusUnauthenticated
	}
	snapshot := cloneSession(s.state)
	s.mu.Unlock()
	s.notify(snapshot)
}

// notify delivers a snapshot to subscribers outside the lock.
func (s *SessionStore) notify(snapshot core.Session) {
	s.mu.Lock()
	fns := make([]func(core.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func cloneUser(u *core.User) *core.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

func cloneSession(s core.Session) core.Session {
	s.User = cloneUser(s.User)
	return s
}
