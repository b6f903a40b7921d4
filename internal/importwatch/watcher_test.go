package importwatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reelq/internal/api"
	"reelq/internal/importwatch"
	"reelq/internal/kvstore"
	"reelq/internal/reels"
	"reelq/internal/testsupport"
	"reelq/internal/viewer"
)

func TestWatcherImportsJSONFiles(t *testing.T) {
	dir := t.TempDir()
	store := kvstore.NewMemory()
	queue := reels.NewQueue(store)
	svc := api.NewService(queue, viewer.NewController(store, testsupport.NewFakeHost(), nil), nil, nil)

	results := make(chan importwatch.Result, 8)
	w := importwatch.New(dir, svc,
		importwatch.WithSettle(20*time.Millisecond),
		importwatch.OnImport(func(r importwatch.Result) { results <- r }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`["ignored.com"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reels.json"), []byte(`{"urls": ["a.com", "b.com"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-results:
		if filepath.Base(r.Path) != "reels.json" {
			t.Fatalf("unexpected import of %s", r.Path)
		}
		if r.Err != nil {
			t.Fatalf("import failed: %v", r.Err)
		}
		if r.Status.Text != "Imported 2 URLs." {
			t.Fatalf("unexpected status %q", r.Status.Text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for import")
	}

	items, err := queue.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected queue %v", items)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := importwatch.New(filepath.Join(t.TempDir(), "missing"), nil)
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
