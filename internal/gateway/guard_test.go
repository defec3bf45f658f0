package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/pkg/session"
)

func signedInStore(t *testing.T, role string) *session.Store {
	t.Helper()
	store := newTestStore()
	require.NoError(t, store.Save(session.Credentials{
		Token: "tok",
		User:  session.User{ID: 1, Email: "x@y.z", Role: role},
	}))
	return store
}

func meServer(adminAccess bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, map[string]any{
			"success": true,
			"data": map[string]any{
				"user":        map[string]any{"ID": 1, "email": "x@y.z"},
				"adminAccess": adminAccess,
			},
		})
	}))
}

func TestGuard_NoSessionIsUnauthenticated(t *testing.T) {
	guard := NewGuard(NewWithBase("http://unused", newTestStore()))

	access, err := guard.Check()

	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, access)
}

func TestGuard_AdminAccessGrantsEntry(t *testing.T) {
	srv := meServer(true)
	defer srv.Close()

	guard := NewGuard(NewWithBase(srv.URL, signedInStore(t, "Admin")))
	access, err := guard.Check()

	require.NoError(t, err)
	assert.Equal(t, Authorized, access)
}

func TestGuard_PlainUserIsUnauthorized(t *testing.T) {
	srv := meServer(false)
	defer srv.Close()

	guard := NewGuard(NewWithBase(srv.URL, signedInStore(t, "Customer")))
	access, err := guard.Check()

	require.NoError(t, err)
	assert.Equal(t, Unauthorized, access)
}

func TestGuard_StaleTokenClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 401, map[string]any{"success": false, "message": "Invalid or expired token"})
	}))
	defer srv.Close()

	store := signedInStore(t, "Admin")
	guard := NewGuard(NewWithBase(srv.URL, store))

	access, err := guard.Check()

	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, access)
	_, ok := store.Load()
	assert.False(t, ok, "a rejected token should be dropped locally")
}

func TestGuard_UnreachableServerIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := signedInStore(t, "Admin")
	guard := NewGuard(NewWithBase(srv.URL, store))

	_, err := guard.Check()

	require.Error(t, err)
	_, ok := store.Load()
	assert.True(t, ok, "transport failures must not sign the user out")
}
