package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBrowser()
	c.normalizePlayer()
	if err := c.normalizeImport(); err != nil {
		return err
	}
	c.normalizeQueue()
	c.normalizeUI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("REELQ_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBrowser() {
	if value, ok := os.LookupEnv("REELQ_DEVTOOLS_URL"); ok && strings.TrimSpace(value) != "" {
		c.Browser.DevToolsURL = value
	}
	c.Browser.DevToolsURL = strings.TrimRight(strings.TrimSpace(c.Browser.DevToolsURL), "/")
	if c.Browser.DevToolsURL == "" {
		c.Browser.DevToolsURL = defaultDevToolsURL
	}
	if c.Browser.TimeoutSeconds <= 0 {
		c.Browser.TimeoutSeconds = defaultBrowserTimeout
	}
}

func (c *Config) normalizePlayer() {
	c.Player.AdvanceInterval = strings.TrimSpace(c.Player.AdvanceInterval)
	if c.Player.AdvanceInterval == "" {
		c.Player.AdvanceInterval = defaultAdvanceInterval
	}
}

func (c *Config) normalizeImport() error {
	c.Import.WatchDir = strings.TrimSpace(c.Import.WatchDir)
	if c.Import.WatchDir == "" {
		return nil
	}
	var err error
	if c.Import.WatchDir, err = expandPath(c.Import.WatchDir); err != nil {
		return fmt.Errorf("import.watch_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeQueue() {
	if c.Queue.LockTimeoutSeconds <= 0 {
		c.Queue.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
}

func (c *Config) normalizeUI() {
	if c.UI.StatusTTLSeconds <= 0 {
		c.UI.StatusTTLSeconds = defaultStatusTTLSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
