package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelq/internal/config"
	"reelq/internal/testsupport"
	"reelq/internal/viewer"
)

type cliTestEnv struct {
	cfg        *config.Config
	host       *testsupport.FakeHost
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("REELQ_DATA_DIR", "")
	t.Setenv("REELQ_DEVTOOLS_URL", "")
	t.Chdir(base)

	configPath := filepath.Join(homeDir, ".config", "reelq", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	host := testsupport.NewFakeHost()
	previous := newViewerHost
	newViewerHost = func(*config.Config, *slog.Logger) viewer.Host { return host }
	t.Cleanup(func() { newViewerHost = previous })

	return &cliTestEnv{cfg: cfg, host: host, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var in io.Reader = strings.NewReader(stdin)
	cmd.SetIn(in)
	flags := []string{}
	if env != nil && env.configPath != "" {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[browser]\ndevtools_url = %q\ntimeout_seconds = 1\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Browser.DevToolsURL,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

func (env *cliTestEnv) shown(t *testing.T) string {
	t.Helper()
	calls := env.host.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Op == "create" || calls[i].Op == "navigate" {
			return calls[i].URL
		}
	}
	t.Fatalf("viewer was never pointed at a URL: %+v", calls)
	return ""
}
