package reels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reelq/internal/kvstore"
	"reelq/internal/logging"
)

// QueueKey is the store key holding the queue.
const QueueKey = "reelsQueue"

// Queue is the persisted, ordered list of reel URLs.
type Queue struct {
	store      kvstore.Store
	lock       kvstore.Locker
	logger     *slog.Logger
	extractors []Extractor
}

// Option customizes a Queue.
type Option func(*Queue)

// WithLocker sets the lock held around every read-modify-write.
func WithLocker(lock kvstore.Locker) Option {
	return func(q *Queue) {
		if lock != nil {
			q.lock = lock
		}
	}
}

// WithLogger sets the queue logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logging.NewComponentLogger(logger, "queue")
	}
}

// WithExtractors replaces the import extractor chain.
func WithExtractors(extractors ...Extractor) Option {
	return func(q *Queue) {
		if len(extractors) > 0 {
			q.extractors = extractors
		}
	}
}

// NewQueue returns a Queue persisted in store.
func NewQueue(store kvstore.Store, opts ...Option) *Queue {
	q := &Queue{
		store:      store,
		lock:       kvstore.NopLocker{},
		logger:     logging.NewNop(),
		extractors: DefaultExtractors,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ImportResult summarizes an ImportMerge.
type ImportResult struct {
	// Found counts usable URLs in the document, duplicates included.
	Found int
	// Added counts URLs appended to the queue.
	Added int
	// Skipped counts URLs already queued or repeated within the document.
	Skipped int
	Queue   []string
}

// Get returns the queue, or an empty slice when none has been stored.
func (q *Queue) Get(ctx context.Context) ([]string, error) {
	var items []string
	if _, err := kvstore.GetJSON(ctx, q.store, QueueKey, &items); err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Set replaces the stored queue.
func (q *Queue) Set(ctx context.Context, items []string) error {
	if items == nil {
		items = []string{}
	}
	if err := kvstore.SetJSON(ctx, q.store, QueueKey, items); err != nil {
		return fmt.Errorf("save queue: %w", err)
	}
	return nil
}

// Append normalizes url and adds it to the tail. Duplicates are allowed.
func (q *Queue) Append(ctx context.Context, url string) ([]string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	normalized := Normalize(url)

	var out []string
	err := q.mutate(ctx, func(items []string) ([]string, error) {
		out = append(items, normalized)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	q.logger.Info("reel added", logging.FieldURL, normalized, logging.FieldQueueLength, len(out))
	return out, nil
}

// Rotate moves the head to the tail. With fewer than two items nothing
// changes and advanced is false, meaning the caller should reload the current
// reel instead of advancing.
func (q *Queue) Rotate(ctx context.Context) (items []string, advanced bool, err error) {
	err = q.mutate(ctx, func(current []string) ([]string, error) {
		items = current
		if len(current) < 2 {
			return nil, nil
		}
		rotated := make([]string, 0, len(current))
		rotated = append(rotated, current[1:]...)
		rotated = append(rotated, current[0])
		items, advanced = rotated, true
		return rotated, nil
	})
	if err != nil {
		return nil, false, err
	}
	if advanced {
		q.logger.Debug("queue rotated", logging.FieldURL, items[0])
	}
	return items, advanced, nil
}

// Clear empties the queue.
func (q *Queue) Clear(ctx context.Context) error {
	err := q.mutate(ctx, func([]string) ([]string, error) {
		return []string{}, nil
	})
	if err != nil {
		return err
	}
	q.logger.Info("queue cleared")
	return nil
}

// ImportMerge parses raw as JSON, extracts URLs, and appends the normalized
// ones not already queued, preserving document order. Malformed JSON yields
// ErrParse and a document without usable URLs yields ErrEmptyResult; the
// queue is untouched in both cases.
func (q *Queue) ImportMerge(ctx context.Context, raw []byte) (ImportResult, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return ImportResult{}, err
	}

	found := extractURLs(doc, q.extractors)
	urls := make([]string, 0, len(found))
	for _, u := range found {
		urls = append(urls, Normalize(u))
	}
	if len(urls) == 0 {
		return ImportResult{}, ErrEmptyResult
	}

	result := ImportResult{Found: len(urls)}
	err = q.mutate(ctx, func(items []string) ([]string, error) {
		seen := make(map[string]struct{}, len(items)+len(urls))
		for _, item := range items {
			seen[item] = struct{}{}
		}
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				result.Skipped++
				continue
			}
			seen[u] = struct{}{}
			items = append(items, u)
			result.Added++
		}
		result.Queue = items
		return items, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	q.logger.Info("import merged",
		slog.Int("found", result.Found),
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
		slog.Int(logging.FieldQueueLength, len(result.Queue)),
	)
	return result, nil
}

// mutate runs fn on the current queue under the lock and persists its result.
// A nil result means "no change".
func (q *Queue) mutate(ctx context.Context, fn func([]string) ([]string, error)) error {
	unlock, err := q.lock.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	items, err := q.Get(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil || next == nil {
		return err
	}
	return q.Set(ctx, next)
}
