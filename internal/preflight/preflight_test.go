package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reelq/internal/kvstore"
	"reelq/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckStateDB_Missing(t *testing.T) {
	result := CheckStateDB(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	if !result.Passed {
		t.Fatalf("expected missing database to pass, got: %s", result.Detail)
	}
}

func TestCheckStateDB_Healthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := kvstore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Set(context.Background(), "reelsQueue", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = store.Close()

	result := CheckStateDB(context.Background(), path)
	if !result.Passed || !strings.Contains(result.Detail, "1 keys") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckStateDB_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	if err := os.WriteFile(path, []byte("definitely not sqlite"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckStateDB(context.Background(), path); result.Passed {
		t.Fatalf("expected failure, got: %+v", result)
	}
}

func TestCheckDevTools_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/version" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"Browser":"Chrome/131.0","webSocketDebuggerUrl":"ws://127.0.0.1/devtools/browser/1"}`))
	}))
	defer srv.Close()

	result := CheckDevTools(context.Background(), srv.URL, time.Second)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "Chrome/131.0") {
		t.Fatalf("expected browser version in detail, got %q", result.Detail)
	}
}

func TestCheckDevTools_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := CheckDevTools(context.Background(), url, time.Second)
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestCheckDevTools_MissingURL(t *testing.T) {
	if result := CheckDevTools(context.Background(), "  ", time.Second); result.Passed || result.Detail != "missing url" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	if len(results) != 3 {
		t.Fatalf("unexpected checks: %v", names)
	}
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("expected filesystem checks to pass: %+v", results)
	}
	if results[2].Passed {
		t.Fatal("expected devtools check to fail against port 0")
	}
	if !Failed(results) {
		t.Fatal("expected Failed to report the devtools failure")
	}
}
