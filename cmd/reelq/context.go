package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"reelq/internal/api"
	"reelq/internal/browser"
	"reelq/internal/config"
	"reelq/internal/kvstore"
	"reelq/internal/logging"
	"reelq/internal/reels"
	"reelq/internal/viewer"
)

// newViewerHost builds the tab host for a session. Tests replace it.
var newViewerHost = func(cfg *config.Config, logger *slog.Logger) viewer.Host {
	return browser.New(browser.Options{
		DevToolsURL: cfg.Browser.DevToolsURL,
		Timeout:     cfg.BrowserTimeout(),
		Logger:      logger,
	})
}

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	sessionID   string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		sessionID:   logging.NewSessionID(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.configErr = fmt.Errorf("load .env: %w", err)
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.sessionID, c.verbose())
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// withService opens the state database and the browser host for the duration
// of fn.
func (c *commandContext) withService(cmd *cobra.Command, fn func(*api.Service, *commandEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	logger = logger.With(slog.String(logging.FieldCommand, cmd.Name()))

	store, err := kvstore.Open(cfg.StatePath())
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer store.Close()

	host := newViewerHost(cfg, logger)
	if closer, ok := host.(io.Closer); ok {
		defer closer.Close()
	}

	queue := reels.NewQueue(store,
		reels.WithLocker(kvstore.NewFileLock(cfg.LockPath(), cfg.LockTimeout())),
		reels.WithLogger(logger),
	)
	svc := api.NewService(
		queue,
		viewer.NewController(store, host, logger),
		api.NewStatusBoard(cfg.StatusTTL()),
		logger,
	)
	logger.Debug("command started")
	return fn(svc, &commandEnv{cfg: cfg, logger: logger})
}

// commandEnv carries per-invocation dependencies to command bodies.
type commandEnv struct {
	cfg    *config.Config
	logger *slog.Logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// reportedError marks an error the command already showed to the operator.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }
