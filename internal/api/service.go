package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"reelq/internal/logging"
	"reelq/internal/reels"
)

// Viewer displays a URL in the dedicated tab.
type Viewer interface {
	Show(ctx context.Context, url string) error
}

// Service wires the queue to the viewer.
type Service struct {
	queue   *reels.Queue
	viewer  Viewer
	board   *StatusBoard
	logger  *slog.Logger
	printer *message.Printer
}

// NewService constructs a Service. A nil board gets the default TTL.
func NewService(queue *reels.Queue, viewer Viewer, board *StatusBoard, logger *slog.Logger) *Service {
	if board == nil {
		board = NewStatusBoard(DefaultStatusTTL)
	}
	return &Service{
		queue:   queue,
		viewer:  viewer,
		board:   board,
		logger:  logging.NewComponentLogger(logger, "service"),
		printer: message.NewPrinter(language.English),
	}
}

// Status returns the fresh status, if any.
func (s *Service) Status() (Status, bool) {
	return s.board.Current()
}

// List returns the queue without changing it.
func (s *Service) List(ctx context.Context) (Snapshot, error) {
	items, err := s.queue.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(items), nil
}

// Add appends url to the queue.
func (s *Service) Add(ctx context.Context, url string) (Snapshot, error) {
	items, err := s.queue.Append(ctx, url)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(items), nil
}

// Open shows the head of the queue.
func (s *Service) Open(ctx context.Context) (Snapshot, error) {
	items, err := s.queue.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := NewSnapshot(items)
	if len(items) == 0 {
		s.board.Post(Status{Kind: StatusError, Text: EmptyQueueMessage})
		return snap, ErrEmptyQueue
	}
	return snap, s.show(ctx, snap.Current)
}

// Next advances to the following reel and shows it. With a single entry the
// current reel is shown again; an empty queue is left alone.
func (s *Service) Next(ctx context.Context) (Snapshot, error) {
	items, advanced, err := s.queue.Rotate(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := NewSnapshot(items)
	if len(items) == 0 {
		s.logger.Debug("next skipped: queue empty")
		return snap, nil
	}
	if !advanced {
		s.logger.Debug("reloading current reel", logging.FieldURL, snap.Current)
	}
	return snap, s.show(ctx, snap.Current)
}

// Clear empties the queue.
func (s *Service) Clear(ctx context.Context) (Snapshot, error) {
	if err := s.queue.Clear(ctx); err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(nil), nil
}

// Import merges the URLs found in a JSON document. A document without URLs
// only posts a status; malformed JSON posts a status and returns
// reels.ErrParse.
func (s *Service) Import(ctx context.Context, r io.Reader) (Snapshot, Status, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, Status{}, fmt.Errorf("read import: %w", err)
	}

	result, err := s.queue.ImportMerge(ctx, raw)
	switch {
	case err == nil:
		status := s.board.Post(Status{Kind: StatusInfo, Text: s.printer.Sprintf("Imported %d URLs.", result.Added)})
		return NewSnapshot(result.Queue), status, nil
	case errors.Is(err, reels.ErrEmptyResult):
		status := s.board.Post(Status{Kind: StatusInfo, Text: "No URLs found in JSON."})
		snap, listErr := s.List(ctx)
		return snap, status, listErr
	case errors.Is(err, reels.ErrParse):
		s.logger.Warn("import rejected", logging.Error(err))
		status := s.board.Post(Status{Kind: StatusError, Text: "Failed to parse JSON."})
		snap, listErr := s.List(ctx)
		if listErr != nil {
			return Snapshot{}, status, errors.Join(err, listErr)
		}
		return snap, status, err
	default:
		return Snapshot{}, Status{}, err
	}
}

func (s *Service) show(ctx context.Context, url string) error {
	if s.viewer == nil {
		return errors.New("no viewer configured")
	}
	if err := s.viewer.Show(ctx, url); err != nil {
		s.logger.Error("show reel failed", logging.FieldURL, url, logging.Error(err))
		s.board.Post(Status{Kind: StatusError, Text: err.Error()})
		return err
	}
	return nil
}
