package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestSQLiteStore(t *testing.T) Store {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err, "migrations must apply on a fresh database")
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	in := payload{Name: "fight club", Count: 2}
	require.NoError(t, store.Set("k", in, time.Minute))

	var out payload
	ok, err := store.Get("k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestSQLiteStoreLazyExpiry(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("k", payload{Name: "stale"}, -time.Minute))

	var out payload
	ok, err := store.Get("k", &out)
	require.NoError(t, err)
	require.False(t, ok, "expired entries must read as absent")
}

func TestSQLiteStoreOverwriteAndReset(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("k", payload{Count: 1}, time.Minute))
	require.NoError(t, store.Set("k", payload{Count: 2}, time.Minute))

	var out payload
	ok, err := store.Get("k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, out.Count)

	require.NoError(t, store.Reset())
	ok, err = store.Get("k", &out)
	require.NoError(t, err)
	require.False(t, ok)
}
