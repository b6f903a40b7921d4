package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the on-disk locations reelq writes to.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Browser contains the DevTools connection used to drive the viewer tab.
type Browser struct {
	DevToolsURL    string `toml:"devtools_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Player contains settings for `reelq play`.
type Player struct {
	// AdvanceInterval is a Go duration string, e.g. "45s" or "2m".
	AdvanceInterval string `toml:"advance_interval"`
}

// Import contains settings for bulk JSON imports.
type Import struct {
	WatchDir string `toml:"watch_dir"`
}

// Queue contains settings for queue persistence.
type Queue struct {
	LockTimeoutSeconds int `toml:"lock_timeout_seconds"`
}

// UI contains settings for the interactive shell.
type UI struct {
	StatusTTLSeconds int `toml:"status_ttl_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Config encapsulates all configuration values for reelq.
//
// Configuration sections by subsystem:
//   - Paths: state database and log directories
//   - Browser: DevTools endpoint of the Chrome that hosts the viewer tab
//   - Player: auto-advance interval
//   - Import: directory watched for JSON imports
//   - Queue: mutation lock timeout
//   - UI: status message lifetime
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Browser Browser `toml:"browser"`
	Player  Player  `toml:"player"`
	Import  Import  `toml:"import"`
	Queue   Queue   `toml:"queue"`
	UI      UI      `toml:"ui"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelq/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelq.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StatePath returns the SQLite database holding the queue and viewer handle.
func (c *Config) StatePath() string {
	return filepath.Join(c.Paths.DataDir, "state.db")
}

// LockPath returns the file lock guarding queue mutations.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "queue.lock")
}

// LogPath returns the log file written by every reelq command.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "reelq.log")
}

// BrowserTimeout returns the per-call deadline for DevTools requests.
func (c *Config) BrowserTimeout() time.Duration {
	return time.Duration(c.Browser.TimeoutSeconds) * time.Second
}

// LockTimeout returns how long a mutation waits for the queue lock.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Queue.LockTimeoutSeconds) * time.Second
}

// StatusTTL returns how long a status message stays visible.
func (c *Config) StatusTTL() time.Duration {
	return time.Duration(c.UI.StatusTTLSeconds) * time.Second
}

// AdvanceEvery returns the parsed auto-advance interval.
func (c *Config) AdvanceEvery() time.Duration {
	d, err := time.ParseDuration(c.Player.AdvanceInterval)
	if err != nil {
		return 0
	}
	return d
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
