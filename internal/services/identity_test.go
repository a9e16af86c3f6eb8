package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/auth0/go-auth0/management"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisabledIdentityReportsNotFound(t *testing.T) {
	err := DisabledIdentity{Log: zap.NewNop()}.DeleteUserByEmail(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

// fakeTenant answers the two management endpoints the adapter calls.
type fakeTenant struct {
	mu         sync.Mutex
	users      []map[string]string
	listStatus int
	// deleteStatus maps a user id to the status its DELETE answers with.
	deleteStatus map[string]int
	deleted      []string
}

func (f *fakeTenant) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v2/users-by-email":
		if f.listStatus != 0 {
			writeAuth0Error(w, f.listStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(f.users)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/v2/users/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/v2/users/")
		if status := f.deleteStatus[id]; status != 0 {
			writeAuth0Error(w, status)
			return
		}
		f.deleted = append(f.deleted, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func writeAuth0Error(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"error":      http.StatusText(status),
		"message":    "tenant says no",
	})
}

func newTestAuth0Identity(t *testing.T, tenant *fakeTenant) *Auth0Identity {
	t.Helper()
	srv := httptest.NewServer(tenant)
	t.Cleanup(srv.Close)

	m, err := management.New(srv.URL,
		management.WithInsecure(),
		management.WithStaticToken("test-token"),
		management.WithNoRetries(),
	)
	require.NoError(t, err)
	return newAuth0Identity(m, zap.NewNop())
}

func TestAuth0IdentityDeletesEveryMatch(t *testing.T) {
	tenant := &fakeTenant{users: []map[string]string{
		{"user_id": "google-oauth2-1", "email": "ada@x.io"},
		{"user_id": "auth0-2", "email": "ada@x.io"},
	}}
	identity := newTestAuth0Identity(t, tenant)

	require.NoError(t, identity.DeleteUserByEmail(context.Background(), "ada@x.io"))
	assert.Equal(t, []string{"google-oauth2-1", "auth0-2"}, tenant.deleted)
}

func TestAuth0IdentityNotFound(t *testing.T) {
	cases := map[string]*fakeTenant{
		"no accounts":  {},
		"lookup 404":   {listStatus: http.StatusNotFound},
		"all gone 404": {users: []map[string]string{{"user_id": "auth0-1"}}, deleteStatus: map[string]int{"auth0-1": http.StatusNotFound}},
	}
	for name, tenant := range cases {
		t.Run(name, func(t *testing.T) {
			err := newTestAuth0Identity(t, tenant).DeleteUserByEmail(context.Background(), "ada@x.io")
			assert.ErrorIs(t, err, ErrIdentityNotFound)
		})
	}
}

func TestAuth0IdentityPartialNotFoundStillDeletes(t *testing.T) {
	tenant := &fakeTenant{
		users:        []map[string]string{{"user_id": "auth0-1"}, {"user_id": "auth0-2"}},
		deleteStatus: map[string]int{"auth0-1": http.StatusNotFound},
	}

	require.NoError(t, newTestAuth0Identity(t, tenant).DeleteUserByEmail(context.Background(), "ada@x.io"))
	assert.Equal(t, []string{"auth0-2"}, tenant.deleted)
}

func TestAuth0IdentityFailures(t *testing.T) {
	cases := map[string]*fakeTenant{
		"lookup 500": {listStatus: http.StatusInternalServerError},
		"lookup 403": {listStatus: http.StatusForbidden},
		"delete 500": {users: []map[string]string{{"user_id": "auth0-1"}}, deleteStatus: map[string]int{"auth0-1": http.StatusInternalServerError}},
	}
	for name, tenant := range cases {
		t.Run(name, func(t *testing.T) {
			err := newTestAuth0Identity(t, tenant).DeleteUserByEmail(context.Background(), "ada@x.io")
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrIdentityNotFound)
		})
	}
}
