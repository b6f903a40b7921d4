package testsupport

import (
	"path/filepath"
	"testing"

	"reelq/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Browser.DevToolsURL = "http://127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDevToolsURL points the browser section at url.
func WithDevToolsURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Browser.DevToolsURL = url
	}
}

// WithWatchDir sets the import watch directory.
func WithWatchDir(dir string) ConfigOption {
	return func(c *config.Config) {
		c.Import.WatchDir = dir
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
