package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"reelq/internal/kvstore"
	"reelq/internal/logging"
)

// TabKey is the store key holding the viewer tab handle.
const TabKey = "viewerTabId"

// ErrStaleHandle marks a stored handle whose tab no longer exists.
var ErrStaleHandle = errors.New("viewer tab handle is stale")

// Controller shows URLs in the dedicated viewer tab.
type Controller struct {
	store  kvstore.Store
	host   Host
	logger *slog.Logger
}

// NewController wires a controller to its handle store and tab host.
func NewController(store kvstore.Store, host Host, logger *slog.Logger) *Controller {
	return &Controller{
		store:  store,
		host:   host,
		logger: logging.NewComponentLogger(logger, "viewer"),
	}
}

// Current returns the stored handle, if any.
func (c *Controller) Current(ctx context.Context) (Handle, bool, error) {
	var raw string
	ok, err := kvstore.GetJSON(ctx, c.store, TabKey, &raw)
	if err != nil {
		return "", false, fmt.Errorf("load viewer handle: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return "", false, nil
	}
	return Handle(raw), true, nil
}

// Show displays url in the viewer tab, creating the tab when there is none
// or the stored one was closed.
func (c *Controller) Show(ctx context.Context, url string) error {
	handle, ok, err := c.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return c.create(ctx, url)
	}

	live, err := c.host.Exists(ctx, handle)
	if err != nil || !live {
		attrs := []any{logging.FieldHandle, string(handle)}
		if err != nil {
			attrs = append(attrs, logging.Error(err))
		}
		c.logger.Debug(ErrStaleHandle.Error(), attrs...)
		return c.create(ctx, url)
	}

	if err := c.host.Navigate(ctx, handle, url); err != nil {
		return fmt.Errorf("navigate viewer tab: %w", err)
	}
	if err := c.host.Activate(ctx, handle); err != nil {
		return fmt.Errorf("focus viewer tab: %w", err)
	}
	c.logger.Info("viewer updated", logging.FieldHandle, string(handle), logging.FieldURL, url)
	return nil
}

func (c *Controller) create(ctx context.Context, url string) error {
	handle, err := c.host.Create(ctx, url)
	if err != nil {
		return fmt.Errorf("create viewer tab: %w", err)
	}
	if err := kvstore.SetJSON(ctx, c.store, TabKey, string(handle)); err != nil {
		return fmt.Errorf("save viewer handle: %w", err)
	}
	c.logger.Info("viewer tab created", logging.FieldHandle, string(handle), logging.FieldURL, url)
	return nil
}
