package autoplay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"reelq/internal/api"
	"reelq/internal/logging"
)

// Advancer is the part of api.Service the player drives.
type Advancer interface {
	Open(ctx context.Context) (api.Snapshot, error)
	Next(ctx context.Context) (api.Snapshot, error)
}

// Player shows the current reel, then calls Next every interval until its
// context ends.
type Player struct {
	svc       Advancer
	every     time.Duration
	logger    *slog.Logger
	onAdvance func(api.Snapshot, error)
}

// Option customizes a Player.
type Option func(*Player)

// WithLogger sets the player logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logging.NewComponentLogger(logger, "autoplay")
	}
}

// OnAdvance registers a callback invoked after the initial open and after
// every scheduled advance.
func OnAdvance(fn func(api.Snapshot, error)) Option {
	return func(p *Player) {
		p.onAdvance = fn
	}
}

// New returns a Player advancing every interval.
func New(svc Advancer, every time.Duration, opts ...Option) (*Player, error) {
	if every <= 0 {
		return nil, fmt.Errorf("autoplay interval must be positive, got %s", every)
	}
	p := &Player{svc: svc, every: every, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run blocks until ctx is done. An empty queue at start is an error; later
// advances on an empty queue are skipped by the service.
func (p *Player) Run(ctx context.Context) error {
	snap, err := p.svc.Open(ctx)
	p.notify(snap, err)
	if err != nil {
		return err
	}

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{p.logger})))
	scheduler.Schedule(interval(p.every), cron.FuncJob(func() {
		snap, err := p.svc.Next(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Warn("advance failed", logging.Error(err))
		} else if err == nil {
			p.logger.Info("advanced", logging.FieldURL, snap.Current, logging.FieldQueueLength, len(snap.Queue))
		}
		p.notify(snap, err)
	}))

	p.logger.Info("autoplay started", "every", p.every.String())
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	p.logger.Info("autoplay stopped")
	return nil
}

func (p *Player) notify(snap api.Snapshot, err error) {
	if p.onAdvance != nil {
		p.onAdvance(snap, err)
	}
}

// interval is a constant-delay schedule without cron's one-second rounding.
type interval time.Duration

func (d interval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

// cronLogger routes scheduler diagnostics to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, logging.Error(err))...)
}
