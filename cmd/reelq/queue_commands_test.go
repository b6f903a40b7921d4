package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelq/internal/api"
	"reelq/internal/reels"
)

func TestAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "add", "a.com", "http://b.com")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "1. https://a.com\n2. http://b.com\n")

	out, _, err = runCLI(t, env, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "2. http://b.com")
}

func TestAddRejectsBlankArgumentBeforeAppending(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", "add", "a.com", "  ")
	if !errors.Is(err, reels.ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}

	out, _, err := runCLI(t, env, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "a.com") {
		t.Fatalf("expected nothing appended, got %q", out)
	}
}

func TestListJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "add", "a.com"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env, "", "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var snap api.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].URL != "https://a.com" || snap.Current != "https://a.com" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestOpenEmptyQueueReportsMessage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, env, "", "open")
	if !errors.Is(err, api.ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reported error, got %T", err)
	}
	requireContains(t, stderr, api.EmptyQueueMessage)
}

func TestOpenAndNextDriveViewer(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "add", "a.com", "b.com"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, _, err := runCLI(t, env, "", "open"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := env.shown(t); got != "https://a.com" {
		t.Fatalf("open showed %q", got)
	}

	out, _, err := runCLI(t, env, "", "next")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	requireContains(t, out, "1. https://b.com\n2. https://a.com")
	if got := env.shown(t); got != "https://b.com" {
		t.Fatalf("next showed %q", got)
	}
	if env.host.Tabs() != 1 {
		t.Fatalf("expected the viewer tab to be reused across invocations, got %d", env.host.Tabs())
	}
}

func TestClear(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "add", "a.com"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := runCLI(t, env, "", "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	requireContains(t, out, "Queue is empty.")
}

func TestImportFileAndStdin(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "reels.json")
	if err := os.WriteFile(path, []byte(`{"items": [{"url": "a.com"}, {"href": "b.com"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, env, "", "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 2 URLs.")
	requireContains(t, out, "2. https://b.com")

	out, _, err = runCLI(t, env, `["b.com", "c.com"]`, "import", "-")
	if err != nil {
		t.Fatalf("import -: %v", err)
	}
	requireContains(t, out, "Imported 1 URLs.")
	requireContains(t, out, "3. https://c.com")
}

func TestImportMalformed(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, env, "{not json", "import", "-")
	if !errors.Is(err, reels.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	requireContains(t, stderr, "Failed to parse JSON.")
}

func TestImportNothingFound(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, `{"title": "none"}`, "import", "-")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "No URLs found in JSON.")
}

func TestShellScript(t *testing.T) {
	env := setupCLITestEnv(t)
	script := "a.com\nb.com\nopen\nnext\nimport\nbogus.com/x\nlist\nquit\nnever.com\n"

	out, stderr, err := runCLI(t, env, script, "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	requireContains(t, stderr, "usage: import <file>")
	requireContains(t, out, "3. https://bogus.com/x")
	if got := env.shown(t); got != "https://b.com" {
		t.Fatalf("viewer shows %q", got)
	}

	listOut, _, err := runCLI(t, env, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, listOut, "https://bogus.com/x")
	if strings.Contains(listOut, "never.com") {
		t.Fatalf("shell kept reading after quit: %s", listOut)
	}
}
