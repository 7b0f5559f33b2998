package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SetGetRemove(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("pendingActions", `[{"kind":"join","eventId":42}]`))

	v, ok, err := store.Get("pendingActions")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"kind":"join","eventId":42}]`, v)

	// Перезапись
	require.NoError(t, store.Set("pendingActions", "[]"))
	v, _, err = store.Get("pendingActions")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	require.NoError(t, store.Remove("pendingActions"))
	_, ok, err = store.Get("pendingActions")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("authToken", "tok123"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("authToken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok123", v)
}
