package testsupport

import (
	"testing"

	"reelq/internal/config"
	"reelq/internal/kvstore"
	"reelq/internal/reels"
)

// MustOpenStore opens the state database for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *kvstore.SQLiteStore {
	t.Helper()

	store, err := kvstore.Open(cfg.StatePath())
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewQueue returns a queue over a fresh SQLite store guarded by the config's file lock.
func NewQueue(t testing.TB, cfg *config.Config) *reels.Queue {
	t.Helper()

	store := MustOpenStore(t, cfg)
	return reels.NewQueue(store, reels.WithLocker(kvstore.NewFileLock(cfg.LockPath(), cfg.LockTimeout())))
}
