package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/midpointplace/midpoint/internal/common"
	"github.com/midpointplace/midpoint/internal/logging"
	"golang.org/x/sync/semaphore"
)

// AuthAPI is the part of api.Client the manager drives.
type AuthAPI interface {
	LoginUser(ctx context.Context, req *models.LoginUserRequest) (*models.UserResponse, error)
	RegisterUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *models.UserUpdateRequest) (*models.UserResponse, error)
	SetAuthToken(token string)
}

type TokenStore interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type RedirectStore interface {
	Consume(ctx context.Context) (string, bool, error)
}

type Navigator interface {
	Push(ctx context.Context, path string) error
}

type Recorder interface {
	ObserveAuth(action, result string)
}

type Manager struct {
	api       AuthAPI
	tokens    TokenStore
	redirects RedirectStore
	nav       Navigator
	log       logging.Logger
	metrics   Recorder

	inflight *semaphore.Weighted

	mu   sync.RWMutex
	sess Session
}

// NewManager builds a Manager in the Anonymous state. Call SetNavigator
// before the first auth action when the navigator itself depends on the
// manager.
func NewManager(api AuthAPI, tokens TokenStore, redirects RedirectStore, log logging.Logger, metrics Recorder) *Manager {
	return &Manager{
		api:       api,
		tokens:    tokens,
		redirects: redirects,
		log:       log.With("component", "session"),
		metrics:   metrics,
		inflight:  semaphore.NewWeighted(1),
	}
}

func (m *Manager) SetNavigator(nav Navigator) {
	m.nav = nav
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess
}

func (m *Manager) State() State              { return m.Snapshot().State }
func (m *Manager) IsAuthenticated() bool     { return m.Snapshot().IsAuthenticated() }
func (m *Manager) CurrentUser() *models.User { return m.Snapshot().User }
func (m *Manager) LastError() string         { return m.Snapshot().LastError }

// HasCredential reports whether a token is held in memory, authenticated or
// not.
func (m *Manager) HasCredential() bool {
	return m.Snapshot().Token != ""
}

// Login authenticates with the API. On success it persists the token and
// navigates to the pending redirect, or to the home page when there is none.
// On failure the session is reset to AuthFailed and the error returned.
func (m *Manager) Login(ctx context.Context, req *models.LoginUserRequest) error {
	if !m.inflight.TryAcquire(1) {
		m.observe("login", "rejected")
		return ErrAuthInProgress
	}
	defer m.inflight.Release(1)

	m.begin()
	defer m.finish()

	resp, err := m.api.LoginUser(ctx, req)
	if err == nil {
		err = m.establish(ctx, "login", resp)
	}
	if err != nil {
		m.fail(ctx, "login", err, fallbackLoginError)
		return err
	}

	target := common.HomePath
	path, ok, err := m.redirects.Consume(ctx)
	if err != nil {
		m.log.Warn(ctx, "pending redirect unreadable", "error", err)
	} else if ok {
		target = path
	}

	m.observe("login", "ok")
	m.log.Info(ctx, "login succeeded", "user_id", resp.ID, "redirect", target)
	return m.navigate(ctx, target)
}

// Register creates an account and signs it in. It always lands on the home
// page; a pending redirect is left for the next login.
func (m *Manager) Register(ctx context.Context, req *models.CreateUserRequest) error {
	if !m.inflight.TryAcquire(1) {
		m.observe("register", "rejected")
		return ErrAuthInProgress
	}
	defer m.inflight.Release(1)

	m.begin()
	defer m.finish()

	resp, err := m.api.RegisterUser(ctx, req)
	if err == nil {
		err = m.establish(ctx, "registration", resp)
	}
	if err != nil {
		m.fail(ctx, "register", err, fallbackRegisterError)
		return err
	}

	m.observe("register", "ok")
	m.log.Info(ctx, "registration succeeded", "user_id", resp.ID)
	return m.navigate(ctx, common.HomePath)
}

// Logout drops the session and returns to the login page. It never fails;
// storage and navigation problems are logged.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.sess.User = nil
	m.sess.Token = ""
	m.sess.State = Anonymous
	m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Error(ctx, "clear persisted token", "error", err)
	}
	m.api.SetAuthToken("")
	m.observe("logout", "ok")

	if err := m.navigate(ctx, common.LoginPath); err != nil {
		m.log.Warn(ctx, "navigate after logout", "error", err)
	}
}

// Rehydrate makes a token from a previous run usable again: it is loaded
// into memory (unless one is already there) and pushed to the API client's
// default header. The profile is not fetched, so IsAuthenticated stays false
// until the next login or registration. With no token anywhere the default
// header is cleared.
func (m *Manager) Rehydrate(ctx context.Context) error {
	token := m.Snapshot().Token
	if token == "" {
		stored, ok, err := m.tokens.Load(ctx)
		if err != nil {
			return fmt.Errorf("rehydrate: %w", err)
		}
		if ok {
			token = stored
			m.mu.Lock()
			m.sess.Token = stored
			m.mu.Unlock()
		}
	}

	m.api.SetAuthToken(token)
	if token != "" {
		m.log.Debug(ctx, "persisted token restored")
	}
	return nil
}

// UpdateUserLocation swaps the user snapshot for a copy carrying loc. It is
// local only and reports false when there is no user.
func (m *Manager) UpdateUserLocation(loc models.Location) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.User == nil {
		return false
	}
	m.sess.User = m.sess.User.WithLocation(loc)
	return true
}

// SaveUserLocation stores loc on the server and, once accepted, applies it
// to the session like UpdateUserLocation.
func (m *Manager) SaveUserLocation(ctx context.Context, loc models.Location) error {
	s := m.Snapshot()
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if _, err := m.api.UpdateUser(ctx, s.User.ID, &models.UserUpdateRequest{Location: &loc}); err != nil {
		return err
	}
	m.UpdateUserLocation(loc)
	return nil
}

func (m *Manager) begin() {
	m.mu.Lock()
	m.sess.State = Authenticating
	m.sess.IsLoading = true
	m.sess.LastError = ""
	m.mu.Unlock()
}

func (m *Manager) finish() {
	m.mu.Lock()
	m.sess.IsLoading = false
	m.mu.Unlock()
}

// establish adopts a successful auth response: header first so a call fired
// right away is authenticated, then the store, then memory.
func (m *Manager) establish(ctx context.Context, action string, resp *models.UserResponse) error {
	if resp == nil || resp.Token == "" || resp.ID == 0 {
		return fmt.Errorf("%s failed: %w", action, ErrIncompleteResponse)
	}

	m.api.SetAuthToken(resp.Token)
	if err := m.tokens.Save(ctx, resp.Token); err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	}

	m.mu.Lock()
	m.sess.User = models.UserFromResponse(resp)
	m.sess.Token = resp.Token
	m.sess.State = Authenticated
	m.mu.Unlock()
	return nil
}

// fail resets to a safe anonymous footing with the error kept for display.
func (m *Manager) fail(ctx context.Context, action string, err error, fallback string) {
	msg := errorMessage(err, fallback)

	m.mu.Lock()
	m.sess.User = nil
	m.sess.Token = ""
	m.sess.State = AuthFailed
	m.sess.LastError = msg
	m.mu.Unlock()

	if clearErr := m.tokens.Clear(ctx); clearErr != nil {
		m.log.Error(ctx, "clear persisted token", "error", clearErr)
	}
	m.api.SetAuthToken("")

	m.observe(action, "failed")
	m.log.Warn(ctx, action+" failed", "error", msg)
}

func (m *Manager) navigate(ctx context.Context, path string) error {
	if m.nav == nil {
		return nil
	}
	if err := m.nav.Push(ctx, path); err != nil {
		return fmt.Errorf("navigate to %s: %w", path, err)
	}
	return nil
}

func (m *Manager) observe(action, result string) {
	if m.metrics != nil {
		m.metrics.ObserveAuth(action, result)
	}
}
