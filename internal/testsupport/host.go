package testsupport

import (
	"context"
	"fmt"
	"sync"

	"reelq/internal/viewer"
)

// HostCall records one call made against a FakeHost.
type HostCall struct {
	Op     string
	Handle viewer.Handle
	URL    string
}

// FakeHost is an in-memory viewer.Host. Tabs are live until CloseTab is called.
type FakeHost struct {
	mu    sync.Mutex
	next  int
	tabs  map[viewer.Handle]string
	calls []HostCall

	// ProbeErr, CreateErr, NavigateErr and ActivateErr are returned by the
	// matching methods when set.
	ProbeErr    error
	CreateErr   error
	NavigateErr error
	ActivateErr error
}

// NewFakeHost returns an empty FakeHost.
func NewFakeHost() *FakeHost {
	return &FakeHost{tabs: make(map[viewer.Handle]string)}
}

func (h *FakeHost) Exists(_ context.Context, handle viewer.Handle) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, HostCall{Op: "exists", Handle: handle})
	if h.ProbeErr != nil {
		return false, h.ProbeErr
	}
	_, ok := h.tabs[handle]
	return ok, nil
}

func (h *FakeHost) Create(_ context.Context, url string) (viewer.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, HostCall{Op: "create", URL: url})
	if h.CreateErr != nil {
		return "", h.CreateErr
	}
	h.next++
	handle := viewer.Handle(fmt.Sprintf("tab-%d", h.next))
	h.tabs[handle] = url
	return handle, nil
}

func (h *FakeHost) Navigate(_ context.Context, handle viewer.Handle, url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, HostCall{Op: "navigate", Handle: handle, URL: url})
	if h.NavigateErr != nil {
		return h.NavigateErr
	}
	if _, ok := h.tabs[handle]; !ok {
		return fmt.Errorf("no tab %s", handle)
	}
	h.tabs[handle] = url
	return nil
}

func (h *FakeHost) Activate(_ context.Context, handle viewer.Handle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, HostCall{Op: "activate", Handle: handle})
	return h.ActivateErr
}

// CloseTab simulates the user closing a tab.
func (h *FakeHost) CloseTab(handle viewer.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.tabs, handle)
}

// URL returns the page loaded in a tab.
func (h *FakeHost) URL(handle viewer.Handle) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	url, ok := h.tabs[handle]
	return url, ok
}

// Tabs returns the number of open tabs.
func (h *FakeHost) Tabs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tabs)
}

// Calls returns the recorded calls and resets the log.
func (h *FakeHost) Calls() []HostCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	calls := h.calls
	h.calls = nil
	return calls
}

// Ops returns the operation names of the recorded calls and resets the log.
func (h *FakeHost) Ops() []string {
	calls := h.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}
