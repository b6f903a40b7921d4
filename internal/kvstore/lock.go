package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when the queue lock could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for queue lock")

const lockRetryDelay = 25 * time.Millisecond

// Locker serializes read-modify-write sequences.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// FileLock is a Locker that holds an exclusive flock on a file, so that two
// reelq processes never interleave queue mutations. It also serializes
// goroutines within one process, since flock locks are per open file.
type FileLock struct {
	held    chan struct{}
	path    string
	timeout time.Duration
}

// NewFileLock returns a lock on path; Lock waits at most timeout (0 waits
// until ctx is done).
func NewFileLock(path string, timeout time.Duration) *FileLock {
	return &FileLock{held: make(chan struct{}, 1), path: path, timeout: timeout}
}

func (l *FileLock) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	ctx = ensureContext(ctx)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case l.held <- struct{}{}:
	case <-ctx.Done():
		return nil, l.waitError(ctx.Err())
	}

	fl := flock.New(l.path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !ok {
		<-l.held
		if err == nil {
			err = context.DeadlineExceeded
		}
		return nil, l.waitError(err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = fl.Unlock()
			<-l.held
		})
	}, nil
}

func (l *FileLock) waitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrLockTimeout, l.path)
	}
	return fmt.Errorf("acquire queue lock: %w", err)
}

// NopLocker performs no locking.
type NopLocker struct{}

func (NopLocker) Lock(context.Context) (func(), error) { return func() {}, nil }
