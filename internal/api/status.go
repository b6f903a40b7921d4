package api

import (
	"sync"
	"time"
)

// DefaultStatusTTL is how long a status stays visible when none is configured.
const DefaultStatusTTL = 3 * time.Second

// StatusBoard holds the latest status until its TTL passes.
type StatusBoard struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	status Status
}

// NewStatusBoard returns a board that expires statuses after ttl.
func NewStatusBoard(ttl time.Duration) *StatusBoard {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusBoard{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source.
func (b *StatusBoard) WithClock(now func() time.Time) *StatusBoard {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now != nil {
		b.now = now
	}
	return b
}

// Post records s, stamping it with the current time.
func (b *StatusBoard) Post(s Status) Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.At = b.now()
	b.status = s
	return s
}

// Current returns the latest status while it is still fresh.
func (b *StatusBoard) Current() (Status, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status.IsZero() {
		return Status{}, false
	}
	if b.now().Sub(b.status.At) >= b.ttl {
		b.status = Status{}
		return Status{}, false
	}
	return b.status, true
}

// Clear drops the current status.
func (b *StatusBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = Status{}
}
