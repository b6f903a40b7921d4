package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"reelq/internal/browser"
	"reelq/internal/kvstore"
)

const defaultDevToolsTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStateDB opens the state database and runs an integrity check. A
// database that does not exist yet passes; it is created on first use.
func CheckStateDB(ctx context.Context, path string) Result {
	const name = "State database"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}

	store, err := kvstore.Open(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !health.IntegrityCheck {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: integrity check failed)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d keys)", path, health.Keys)}
}

// CheckDevTools verifies that a debuggable browser answers at devtoolsURL.
func CheckDevTools(ctx context.Context, devtoolsURL string, timeout time.Duration) Result {
	const name = "Browser DevTools"

	base := strings.TrimRight(strings.TrimSpace(devtoolsURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.HasPrefix(base, "ws://") || strings.HasPrefix(base, "wss://") {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (websocket url, not probed)", base)}
	}
	if timeout <= 0 {
		timeout = defaultDevToolsTimeout
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{Timeout: timeout}
	version, err := browser.FetchVersion(checkCtx, client, base)
	if err != nil {
		return Result{Name: name, Detail: summarizeDevToolsError(err)}
	}
	if version.WebSocketDebuggerURL == "" {
		return Result{Name: name, Detail: "reachable but no webSocketDebuggerUrl reported"}
	}
	detail := "Reachable"
	if version.Browser != "" {
		detail = fmt.Sprintf("Reachable (%s)", version.Browser)
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// summarizeDevToolsError produces a human-readable summary for DevTools probe failures.
func summarizeDevToolsError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out (is Chrome running with --remote-debugging-port?)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "probe timed out (is Chrome running with --remote-debugging-port?)"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection refused (start Chrome with --remote-debugging-port)"
	}
	return err.Error()
}
