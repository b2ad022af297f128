// Package session holds the current user identity and bearer token. It has
// an explicit lifecycle: Restore at startup (load token, resolve user),
// Login/Register to establish a session, Logout to tear it down. Views
// receive the Manager rather than reading ambient globals.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

// User is the backend-owned account record, immutable client-side.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the backend's answer to login/register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Manager owns the session state and synchronizes it with the token store
// and the REST client's auth header.
type Manager struct {
	api    *rest.Client
	store  TokenStore
	logger zerolog.Logger
	user   *User
}

func NewManager(api *rest.Client, store TokenStore, logger zerolog.Logger) *Manager {
	return &Manager{api: api, store: store, logger: logger}
}

// Restore initializes the session from the persisted token. A missing token
// leaves the manager signed out. A locally-expired or rejected token forces
// a logout: the store and in-memory state are cleared.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil
	}

	if tokenExpired(token) {
		m.logger.Debug().Msg("stored token expired, clearing session")
		return m.forceLogout()
	}

	m.api.SetToken(token)
	var user User
	if err := m.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		if rest.IsAuth(err) {
			m.logger.Debug().Msg("stored token rejected, clearing session")
			return m.forceLogout()
		}
		// Transport failure: keep the token, stay signed out for this run.
		m.api.ClearToken()
		return fmt.Errorf("resolve user: %w", err)
	}
	if _, err := ParseRole(string(user.Role)); err != nil {
		return m.forceLogout()
	}
	m.user = &user
	return nil
}

// Login exchanges credentials for a token and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	var resp TokenResponse
	err := m.api.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return m.establish(resp)
}

// Register creates an account with role "user" and signs in.
func (m *Manager) Register(ctx context.Context, name, email, phone, password string) (*User, error) {
	req := registerRequest{Email: email, Name: name, Phone: phone, Role: string(RoleUser), Password: password}
	var resp TokenResponse
	if err := m.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return m.establish(resp)
}

func (m *Manager) establish(resp TokenResponse) (*User, error) {
	if _, err := ParseRole(string(resp.User.Role)); err != nil {
		return nil, err
	}
	if err := m.store.Save(resp.AccessToken); err != nil {
		return nil, err
	}
	m.api.SetToken(resp.AccessToken)
	m.user = &resp.User
	m.logger.Info().Str("role", resp.User.Role.String()).Msg("signed in")
	return m.user, nil
}

// Logout tears down the session: storage cleared, token detached, user
// state dropped.
func (m *Manager) Logout() error {
	return m.forceLogout()
}

func (m *Manager) forceLogout() error {
	m.user = nil
	m.api.ClearToken()
	return m.store.Clear()
}

// CurrentUser returns the resolved user, nil when signed out.
func (m *Manager) CurrentUser() *User { return m.user }

// SignedIn reports whether a user has been resolved for this run.
func (m *Manager) SignedIn() bool { return m.user != nil }

// tokenExpired inspects the token's exp claim without verifying the
// signature; validation is the backend's job, this only short-circuits
// tokens that cannot possibly be accepted.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT we can read; let the backend decide.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
