package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelq/internal/api"
	"reelq/internal/logging"
)

const shellHelp = `Type a URL to add it, or one of:
  open            show the current reel
  next            advance to the next reel
  clear           empty the queue
  list            print the queue
  import <file>   merge URLs from a JSON file
  status          show the latest status message
  quit            leave the shell`

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: type URLs to queue them and keywords to play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, env *commandEnv) error {
				return runShell(cmd, svc, env)
			})
		},
	}
}

func runShell(cmd *cobra.Command, svc *api.Service, env *commandEnv) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	interactive := isTerminal(in)
	if interactive {
		fmt.Fprintln(out, shellHelp)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "reelq> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := runShellLine(cmd, svc, line)
		if err != nil {
			var reported reportedError
			if !errors.As(err, &reported) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			env.logger.Debug("shell command failed", "line", line, logging.Error(err))
		}
		if quit {
			return nil
		}
	}
}

func runShellLine(cmd *cobra.Command, svc *api.Service, line string) (bool, error) {
	ctx := cmd.Context()
	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var (
		snap api.Snapshot
		err  error
	)
	switch strings.ToLower(keyword) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(cmd.OutOrStdout(), shellHelp)
		return false, nil
	case "status":
		if status, ok := svc.Status(); ok {
			printStatus(cmd.OutOrStdout(), status)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No status.")
		}
		return false, nil
	case "open":
		snap, err = svc.Open(ctx)
	case "next":
		snap, err = svc.Next(ctx)
	case "clear":
		snap, err = svc.Clear(ctx)
	case "list", "ls":
		snap, err = svc.List(ctx)
	case "import":
		if rest == "" {
			return false, errors.New("usage: import <file>")
		}
		return false, runImport(cmd, svc, rest)
	default:
		snap, err = svc.Add(ctx, line)
	}
	if err := reportStatus(cmd, svc, err); err != nil {
		return false, err
	}
	printQueue(cmd.OutOrStdout(), snap)
	return false, nil
}
