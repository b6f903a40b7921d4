package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoDebuggerURL is returned when /json/version does not advertise a
// browser websocket.
var ErrNoDebuggerURL = errors.New("devtools endpoint did not report webSocketDebuggerUrl")

// Version is the /json/version document served by a debuggable browser.
type Version struct {
	Browser              string `json:"Browser"`
	ProtocolVersion      string `json:"Protocol-Version"`
	UserAgent            string `json:"User-Agent"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// FetchVersion reads /json/version from an http(s) DevTools endpoint.
func FetchVersion(ctx context.Context, client *http.Client, devtoolsURL string) (Version, error) {
	if client == nil {
		client = http.DefaultClient
	}
	endpoint := strings.TrimRight(devtoolsURL, "/") + "/json/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Version{}, fmt.Errorf("build devtools request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Version{}, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Version{}, fmt.Errorf("query %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var version Version
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return Version{}, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return version, nil
}

// ResolveWebSocketURL turns a configured DevTools address into the browser
// websocket URL. ws:// and wss:// addresses are used as given.
func ResolveWebSocketURL(ctx context.Context, client *http.Client, devtoolsURL string) (string, error) {
	parsed, err := url.Parse(devtoolsURL)
	if err != nil {
		return "", fmt.Errorf("parse devtools url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "ws", "wss":
		return devtoolsURL, nil
	case "http", "https":
	default:
		return "", fmt.Errorf("unsupported devtools url scheme %q", parsed.Scheme)
	}

	version, err := FetchVersion(ctx, client, devtoolsURL)
	if err != nil {
		return "", err
	}
	if version.WebSocketDebuggerURL == "" {
		return "", ErrNoDebuggerURL
	}
	return version.WebSocketDebuggerURL, nil
}
