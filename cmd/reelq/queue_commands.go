package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelq/internal/api"
	"reelq/internal/reels"
)

func newQueueCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAddCommand(ctx),
		newSnapshotCommand(ctx, "open", "Show the reel at the head of the queue", (*api.Service).Open),
		newSnapshotCommand(ctx, "next", "Move the current reel to the back and show the next one", (*api.Service).Next),
		newSnapshotCommand(ctx, "clear", "Remove every reel from the queue", (*api.Service).Clear),
		newListCommand(ctx),
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>...",
		Short: "Append reel URLs to the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, arg := range args {
				if strings.TrimSpace(arg) == "" {
					return fmt.Errorf("argument %d: %w", i+1, reels.ErrEmptyURL)
				}
			}
			return ctx.withService(cmd, func(svc *api.Service, _ *commandEnv) error {
				var snap api.Snapshot
				for _, arg := range args {
					var err error
					snap, err = svc.Add(cmd.Context(), arg)
					if err != nil {
						return err
					}
				}
				printQueue(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
}

type snapshotOp func(*api.Service, context.Context) (api.Snapshot, error)

func newSnapshotCommand(ctx *commandContext, use, short string, op snapshotOp) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, _ *commandEnv) error {
				snap, err := op(svc, cmd.Context())
				if err := reportStatus(cmd, svc, err); err != nil {
					return err
				}
				printQueue(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the queue",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, _ *commandEnv) error {
				snap, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, snap)
				}
				printQueue(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the queue as JSON")
	return cmd
}

// reportStatus prints the service's fresh status, info to stdout and errors
// to stderr. An error whose status was printed comes back as reportedError.
func reportStatus(cmd *cobra.Command, svc *api.Service, err error) error {
	status, ok := svc.Status()
	if ok {
		if status.Kind == api.StatusError {
			printStatus(cmd.ErrOrStderr(), status)
		} else {
			printStatus(cmd.OutOrStdout(), status)
		}
	}
	if err == nil {
		return nil
	}
	if ok && status.Kind == api.StatusError {
		return reportedError{err: err}
	}
	return err
}
