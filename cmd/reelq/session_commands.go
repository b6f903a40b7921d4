package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelq/internal/api"
	"reelq/internal/autoplay"
	"reelq/internal/importwatch"
	"reelq/internal/logging"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var every time.Duration
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Show the current reel and advance on a fixed interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, env *commandEnv) error {
				interval := every
				if interval <= 0 {
					interval = env.cfg.AdvanceEvery()
				}
				out := cmd.OutOrStdout()
				player, err := autoplay.New(svc, interval,
					autoplay.WithLogger(env.logger),
					autoplay.OnAdvance(func(snap api.Snapshot, err error) {
						if err != nil {
							return
						}
						fmt.Fprintf(out, "Now playing: %s (%d queued)\n", snap.Current, len(snap.Queue))
					}),
				)
				if err != nil {
					return err
				}

				signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				err = player.Run(signalCtx)
				if errors.Is(err, api.ErrEmptyQueue) {
					return reportStatus(cmd, svc, err)
				}
				return err
			})
		},
	}
	cmd.Flags().DurationVar(&every, "every", 0, "Advance interval (defaults to player.advance_interval)")
	return cmd
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Import every JSON file written to a directory until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, env *commandEnv) error {
				dir := env.cfg.Import.WatchDir
				if len(args) == 1 {
					dir = strings.TrimSpace(args[0])
				}
				if dir == "" {
					return errors.New("no directory to watch: pass one or set import.watch_dir")
				}

				out := cmd.OutOrStdout()
				errOut := cmd.ErrOrStderr()
				watcher := importwatch.New(dir, svc,
					importwatch.WithLogger(env.logger),
					importwatch.OnImport(func(r importwatch.Result) {
						if r.Err != nil && r.Status.IsZero() {
							fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err)
							return
						}
						if r.Status.Kind == api.StatusError {
							fmt.Fprintf(errOut, "%s: %s\n", r.Path, r.Status.Text)
							return
						}
						fmt.Fprintf(out, "%s: %s\n", r.Path, r.Status.Text)
					}),
				)

				signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				fmt.Fprintf(out, "Watching %s for JSON imports (Ctrl+C to stop)\n", dir)
				if err := watcher.Run(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
					env.logger.Error("watch stopped", logging.Error(err))
					return err
				}
				return nil
			})
		},
	}
}
