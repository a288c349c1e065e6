package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"threadline/internal/core"
	"threadline/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, path string) *session.Store {
	t.Helper()

	store := &session.Store{Config: &core.Config{SessionPath: path}}
	require.NoError(t, store.Init(t.Context()))
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := newStore(t, path)
	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, store.Token())

	sess := core.Session{User: core.Author{ID: "u1", Name: "alice"}, Token: "tok"}
	require.NoError(t, store.Save(sess))

	reopened := newStore(t, path)
	got, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Equal(t, "tok", reopened.Token())
}

func TestClearDropsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := newStore(t, path)
	require.NoError(t, store.Save(core.Session{Token: "tok"}))
	require.NoError(t, store.Clear())

	_, ok := newStore(t, path).Current()
	assert.False(t, ok)
}

func TestExpandedStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := newStore(t, path)
	store.SaveExpanded("post:p1", map[string]bool{"c1": true})

	reopened := newStore(t, path)
	assert.True(t, reopened.LoadExpanded("post:p1")["c1"])
	assert.Empty(t, reopened.LoadExpanded("post:p2"))
}

func TestLoadExpandedReturnsACopy(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "session.json"))
	store.SaveExpanded("post:p1", map[string]bool{"c1": true})

	first := store.LoadExpanded("post:p1")
	first["c2"] = true

	assert.False(t, store.LoadExpanded("post:p1")["c2"])
}

func TestCorruptFileMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := newStore(t, path)
	_, ok := store.Current()
	assert.False(t, ok)
}

func TestSessionFileIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := newStore(t, path)
	require.NoError(t, store.Save(core.Session{Token: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
