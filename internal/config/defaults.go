package config

const (
	defaultDataDir            = "~/.local/share/reelq"
	defaultLogDir             = "~/.local/share/reelq/logs"
	defaultDevToolsURL        = "http://127.0.0.1:9222"
	defaultBrowserTimeout     = 15
	defaultAdvanceInterval    = "30s"
	defaultStatusTTLSeconds   = 3
	defaultLockTimeoutSeconds = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Browser: Browser{
			DevToolsURL:    defaultDevToolsURL,
			TimeoutSeconds: defaultBrowserTimeout,
		},
		Player: Player{
			AdvanceInterval: defaultAdvanceInterval,
		},
		Queue: Queue{
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		UI: UI{
			StatusTTLSeconds: defaultStatusTTLSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
