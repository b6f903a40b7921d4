package preflight

import (
	"context"

	"reelq/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckStateDB(ctx, cfg.StatePath()),
	}

	// Watch directory (when configured)
	if cfg.Import.WatchDir != "" {
		results = append(results, CheckDirectoryAccess("Watch directory", cfg.Import.WatchDir))
	}

	results = append(results, CheckDevTools(ctx, cfg.Browser.DevToolsURL, cfg.BrowserTimeout()))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
