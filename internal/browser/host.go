package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"reelq/internal/logging"
	"reelq/internal/viewer"
)

const pageTargetType = "page"

// Options configures a Host.
type Options struct {
	// DevToolsURL is the http(s) or ws(s) address of the browser.
	DevToolsURL string
	// Timeout bounds each tab operation. Zero means no limit beyond ctx.
	Timeout time.Duration
	// HTTPClient is used for /json/version; nil means http.DefaultClient.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Host drives tabs of a running Chrome over CDP. It connects lazily on the
// first call and must be closed when done.
type Host struct {
	opts   Options
	logger *slog.Logger

	mu          sync.Mutex
	wsURL       string
	browser     *chromedp.Browser
	cancelConn  context.CancelFunc
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// New returns an unconnected Host.
func New(opts Options) *Host {
	return &Host{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "browser"),
	}
}

var _ viewer.Host = (*Host)(nil)

// Exists reports whether a page target with the handle's ID is open.
func (h *Host) Exists(ctx context.Context, handle viewer.Handle) (bool, error) {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	exec, err := h.executor(ctx)
	if err != nil {
		return false, err
	}
	infos, err := target.GetTargets().Do(exec)
	if err != nil {
		return false, fmt.Errorf("list targets: %w", err)
	}
	for _, info := range infos {
		if info.TargetID == target.ID(handle) && info.Type == pageTargetType {
			return true, nil
		}
	}
	return false, nil
}

// Create opens url in a new foreground tab.
func (h *Host) Create(ctx context.Context, url string) (viewer.Handle, error) {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	exec, err := h.executor(ctx)
	if err != nil {
		return "", err
	}
	id, err := target.CreateTarget(url).Do(exec)
	if err != nil {
		return "", fmt.Errorf("create target: %w", err)
	}
	if err := target.ActivateTarget(id).Do(exec); err != nil {
		h.logger.Debug("activate new target failed", logging.FieldHandle, string(id), logging.Error(err))
	}
	h.logger.Debug("target created", logging.FieldHandle, string(id), logging.FieldURL, url)
	return viewer.Handle(id), nil
}

// Navigate loads url in the existing tab.
func (h *Host) Navigate(ctx context.Context, handle viewer.Handle, url string) error {
	allocCtx, err := h.allocator(ctx)
	if err != nil {
		return err
	}

	// The first context on an allocator owns the connection rather than the
	// tab, so cancelling it detaches without closing the page.
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithTargetID(target.ID(handle)))
	defer cancelTab()

	runCtx, cancel := h.withTimeout(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", handle, err)
	}
	return nil
}

// Activate brings the tab to the foreground.
func (h *Host) Activate(ctx context.Context, handle viewer.Handle) error {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	exec, err := h.executor(ctx)
	if err != nil {
		return err
	}
	if err := target.ActivateTarget(target.ID(handle)).Do(exec); err != nil {
		return fmt.Errorf("activate target: %w", err)
	}
	return nil
}

// Close drops the DevTools connections. Open tabs stay open.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelConn != nil {
		h.cancelConn()
		h.cancelConn = nil
		h.browser = nil
	}
	if h.cancelAlloc != nil {
		h.cancelAlloc()
		h.cancelAlloc = nil
		h.allocCtx = nil
	}
	return nil
}

func (h *Host) executor(ctx context.Context) (context.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser == nil {
		wsURL, err := h.resolve(ctx)
		if err != nil {
			return nil, err
		}
		connCtx, cancel := context.WithCancel(context.Background())
		var dialOpts []chromedp.BrowserOption
		if h.opts.Timeout > 0 {
			dialOpts = append(dialOpts, chromedp.WithDialTimeout(h.opts.Timeout))
		}
		browser, err := chromedp.NewBrowser(connCtx, wsURL, dialOpts...)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("connect to browser: %w", err)
		}
		h.browser, h.cancelConn = browser, cancel
		h.logger.Debug("connected to browser", "ws_url", wsURL)
	}
	return cdp.WithExecutor(ctx, h.browser), nil
}

func (h *Host) allocator(ctx context.Context) (context.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.allocCtx == nil {
		wsURL, err := h.resolve(ctx)
		if err != nil {
			return nil, err
		}
		h.allocCtx, h.cancelAlloc = chromedp.NewRemoteAllocator(context.Background(), wsURL)
	}
	return h.allocCtx, nil
}

// resolve must be called with mu held.
func (h *Host) resolve(ctx context.Context) (string, error) {
	if h.wsURL != "" {
		return h.wsURL, nil
	}
	if h.opts.DevToolsURL == "" {
		return "", errors.New("devtools url is not configured")
	}
	resolveCtx, cancel := h.withTimeout(ctx)
	defer cancel()
	wsURL, err := ResolveWebSocketURL(resolveCtx, h.opts.HTTPClient, h.opts.DevToolsURL)
	if err != nil {
		return "", fmt.Errorf("browser unreachable at %s (start Chrome with --remote-debugging-port): %w", h.opts.DevToolsURL, err)
	}
	h.wsURL = wsURL
	return wsURL, nil
}

func (h *Host) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.opts.Timeout)
}
