package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/pkg/session"
)

func fileStore(t *testing.T) (*session.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return session.New(&session.FileBackend{Path: path}), path
}

func sampleCreds() session.Credentials {
	return session.Credentials{
		Token: "jwt-abc123",
		User: session.User{
			ID:        7,
			FirstName: "Hina",
			LastName:  "Raza",
			Email:     "hina@example.com",
			Role:      "Manager",
		},
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store, _ := fileStore(t)

	require.NoError(t, store.Save(sampleCreds()))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "jwt-abc123", got.Token)
	assert.Equal(t, "Manager", got.User.Role)
	assert.Equal(t, uint(7), got.User.ID)
}

func TestLoadAbsentSession(t *testing.T) {
	store, _ := fileStore(t)

	_, ok := store.Load()
	assert.False(t, ok)
	assert.Empty(t, store.Token())
}

func TestCorruptDocumentCountsAsAbsent(t *testing.T) {
	store, path := fileStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := store.Load()
	assert.False(t, ok, "corrupt document must read as signed out")

	// The corrupt file is dropped so subsequent loads start clean.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUserWithoutTokenCountsAsAbsent(t *testing.T) {
	store, path := fileStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"id":1}}`), 0o600))

	_, ok := store.Load()
	assert.False(t, ok, "document without a token must read as signed out")
}

func TestTokenWithoutUserCountsAsAbsent(t *testing.T) {
	store, path := fileStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"abc"}`), 0o600))

	_, ok := store.Load()
	assert.False(t, ok, "a stored token with no user must read as signed out")
	assert.Empty(t, store.Token())

	// The half-written document is dropped along the way.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestZeroValueUserCountsAsAbsent(t *testing.T) {
	store, path := fileStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"abc","user":{}}`), 0o600))

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestClearRemovesPair(t *testing.T) {
	store, _ := fileStore(t)

	require.NoError(t, store.Save(sampleCreds()))
	require.NoError(t, store.Clear())

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestClearAbsentSessionSucceeds(t *testing.T) {
	store, _ := fileStore(t)
	assert.NoError(t, store.Clear())
}

func TestSaveReplacesPreviousPair(t *testing.T) {
	store, _ := fileStore(t)

	require.NoError(t, store.Save(sampleCreds()))

	next := sampleCreds()
	next.Token = "jwt-def456"
	next.User.Role = "Admin"
	require.NoError(t, store.Save(next))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "jwt-def456", got.Token)
	assert.Equal(t, "Admin", got.User.Role)
}

func TestMemoryBackend(t *testing.T) {
	store := session.New(&session.MemoryBackend{})

	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.Save(sampleCreds()))
	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "hina@example.com", got.User.Email)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	assert.False(t, ok)
}
