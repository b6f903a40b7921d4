// Package importwatch imports JSON files dropped into a directory.
package importwatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"reelq/internal/api"
	"reelq/internal/logging"
)

// DefaultSettle is how long a file must be quiet before it is imported.
const DefaultSettle = 250 * time.Millisecond

// Importer is the part of api.Service the watcher drives.
type Importer interface {
	Import(ctx context.Context, r io.Reader) (api.Snapshot, api.Status, error)
}

// Result describes one imported file.
type Result struct {
	Path     string
	Snapshot api.Snapshot
	Status   api.Status
	Err      error
}

// Watcher imports every *.json file created or written in a directory.
type Watcher struct {
	dir      string
	importer Importer
	logger   *slog.Logger
	settle   time.Duration
	onImport func(Result)
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logging.NewComponentLogger(logger, "importwatch")
	}
}

// WithSettle overrides DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// OnImport registers a callback run after each import attempt.
func OnImport(fn func(Result)) Option {
	return func(w *Watcher) {
		w.onImport = fn
	}
}

// New returns a Watcher for dir.
func New(dir string, importer Importer, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		importer: importer,
		logger:   logging.NewNop(),
		settle:   DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. Imports run one at a time on the calling
// goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching for imports", "dir", w.dir)

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isImportCandidate(event) {
				continue
			}
			w.logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			pending[event.Name] = time.Now().Add(w.settle)
			timer.Reset(w.settle)

		case <-timer.C:
			now := time.Now()
			var wait time.Duration
			for path, due := range pending {
				if left := due.Sub(now); left > 0 {
					if wait == 0 || left < wait {
						wait = left
					}
					continue
				}
				delete(pending, path)
				w.importFile(ctx, path)
			}
			if wait > 0 {
				timer.Reset(wait)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	result := Result{Path: path}
	defer func() {
		if w.onImport != nil {
			w.onImport(result)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("open %s: %w", path, err)
		w.logger.Warn("import skipped", "path", path, logging.Error(err))
		return
	}
	defer file.Close()

	result.Snapshot, result.Status, result.Err = w.importer.Import(ctx, file)
	if result.Err != nil {
		w.logger.Warn("import failed", "path", path, "status", result.Status.Text, logging.Error(result.Err))
		return
	}
	w.logger.Info("file imported",
		"path", path,
		"status", result.Status.Text,
		logging.FieldQueueLength, len(result.Snapshot.Queue),
	)
}

func isImportCandidate(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".json")
}
