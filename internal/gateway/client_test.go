package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/pkg/session"
)

func newTestStore() *session.Store {
	return session.New(&session.MemoryBackend{})
}

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestClient_DecodesSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, map[string]any{
			"success": true,
			"count":   2,
			"data": []map[string]any{
				{"name": "PET Plastic", "code": "PET"},
				{"name": "Aluminium Cans", "code": "ALU"},
			},
		})
	}))
	defer srv.Close()

	client := NewWithBase(srv.URL, newTestStore())
	materials, err := client.Materials()

	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "PET", materials[0].Code)
}

func TestClient_FailureEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 422, map[string]any{
			"success": false,
			"message": "Validation failed",
			"errors":  map[string]string{"quantity": "The quantity field must be greater than 0."},
		})
	}))
	defer srv.Close()

	client := NewWithBase(srv.URL, newTestStore())
	_, err := client.CreatePickup(PickupDraft{MaterialID: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Contains(t, apiErr.Fields, "quantity")
	assert.Contains(t, apiErr.Error(), "quantity")
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewWithBase(srv.URL, newTestStore())
	_, err := client.Materials()

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must stay plain errors")
}

func TestClient_NonEnvelopeBodyIsServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewWithBase(srv.URL, newTestStore())
	_, err := client.Materials()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
}

func TestClient_AttachesBearerWhenSignedIn(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, 200, map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	store := newTestStore()
	require.NoError(t, store.Save(session.Credentials{
		Token: "tok-123",
		User:  session.User{ID: 1, Email: "a@b.c", Role: "Customer"},
	}))

	client := NewWithBase(srv.URL, store)
	_, err := client.MyPickups()

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_LoginPersistsCredentialPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "tok-login",
				"user":  map[string]any{"ID": 7, "firstName": "Sara", "email": "sara@example.com", "role": "Admin"},
			},
		})
	}))
	defer srv.Close()

	store := newTestStore()
	client := NewWithBase(srv.URL, store)

	res, err := client.Login("sara@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", res.Token)

	creds, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-login", creds.Token)
	assert.Equal(t, "sara@example.com", creds.User.Email)
	assert.Equal(t, "Admin", creds.User.Role)
}

func TestClient_LogoutClearsSession(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Save(session.Credentials{Token: "tok", User: session.User{ID: 1}}))

	client := NewWithBase("http://unused", store)
	require.NoError(t, client.Logout())

	_, ok := store.Load()
	assert.False(t, ok)
}
