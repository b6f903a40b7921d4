package viewer

import "context"

// Handle identifies a browser tab. It is opaque to the controller.
type Handle string

// Host is the tab API the controller drives.
type Host interface {
	// Exists reports whether the tab is still open.
	Exists(ctx context.Context, h Handle) (bool, error)
	// Create opens a new focused tab at url.
	Create(ctx context.Context, url string) (Handle, error)
	// Navigate points an existing tab at url.
	Navigate(ctx context.Context, h Handle, url string) error
	// Activate focuses an existing tab.
	Activate(ctx context.Context, h Handle) error
}
