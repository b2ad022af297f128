package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/session"
)

// env is one wired client stack against a fresh fake backend.
type env struct {
	backend  *fakeBackend
	api      *rest.Client
	sessions *session.Manager
	store    *session.FileStore
}

// newEnv starts a fake backend and wires a client against it. Each test gets
// its own backend and token file; nothing is shared across tests.
func newEnv(t *testing.T) *env {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := rest.New(srv.URL)
	store := session.NewFileStore(filepath.Join(t.TempDir(), "token"))
	return &env{
		backend:  backend,
		api:      api,
		sessions: session.NewManager(api, store, zerolog.Nop()),
		store:    store,
	}
}

// signIn logs in one of the seeded accounts.
func (e *env) signIn(t *testing.T, email, password string) *session.User {
	t.Helper()
	user, err := e.sessions.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return user
}
