package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBrowser(); err != nil {
		return err
	}
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBrowser() error {
	parsed, err := url.Parse(c.Browser.DevToolsURL)
	if err != nil {
		return fmt.Errorf("browser.devtools_url: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("browser.devtools_url must use http(s) or ws(s), got %q", c.Browser.DevToolsURL)
	}
	if parsed.Host == "" {
		return errors.New("browser.devtools_url must include a host")
	}
	return nil
}

func (c *Config) validatePlayer() error {
	d, err := time.ParseDuration(c.Player.AdvanceInterval)
	if err != nil {
		return fmt.Errorf("player.advance_interval: %w", err)
	}
	if d < time.Second {
		return errors.New("player.advance_interval must be at least 1s")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
