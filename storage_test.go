package papertrade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageBackends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	sqlite, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Storage{
		"file":   file,
		"sqlite": sqlite,
	}
}

func TestStorageRoundTrip(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			value := map[string]string{"balance": "10000", "currency": "USDT"}
			require.NoError(t, store.Save("portfolio", value))

			var loaded map[string]string
			found, err := store.Load("portfolio", &loaded)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, value, loaded)
		})
	}
}

func TestStorageLoadMissing(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			var into map[string]string
			found, err := store.Load("never-saved", &into)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStorageOverwrite(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("k", map[string]string{"v": "1"}))
			require.NoError(t, store.Save("k", map[string]string{"v": "2"}))

			var loaded map[string]string
			found, err := store.Load("k", &loaded)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "2", loaded["v"])
		})
	}
}

func TestStorageDelete(t *testing.T) {
	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("k", map[string]string{"v": "1"}))
			require.NoError(t, store.Delete("k"))

			var into map[string]string
			found, err := store.Load("k", &into)
			require.NoError(t, err)
			assert.False(t, found)

			// Deleting an absent key is not an error.
			assert.NoError(t, store.Delete("k"))
		})
	}
}

func TestStoragePersistsPortfolioState(t *testing.T) {
	p := NewPortfolio(usd("10000"))
	p.ExecuteBuy("BTCUSDT", qty("0.1"), usd("50000"))

	for name, store := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("portfolio", Snapshot(p)))

			var state PortfolioState
			found, err := store.Load("portfolio", &state)
			require.NoError(t, err)
			require.True(t, found)

			restored, err := Restore(&state)
			require.NoError(t, err)
			assert.True(t, restored.Balance().Equal(p.Balance()),
				"balance %s, want %s", restored.Balance().Amount(), p.Balance().Amount())
		})
	}
}

func TestFileStorageCorruptedBlob(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio.json"), []byte("{not json"), 0o644))

	var into map[string]string
	_, err = store.Load("portfolio", &into)
	assert.Error(t, err, "a corrupted blob must surface as an error, not an absent key")
}

func TestFileStorageKeySanitization(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("../evil/key", map[string]string{"v": "1"}))

	// The file stays inside the base directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var loaded map[string]string
	found, err := store.Load("../evil/key", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
}
