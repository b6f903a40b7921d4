package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"reelq/internal/api"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge reel URLs from a JSON file into the queue",
		Long: `Merge reel URLs from a JSON file into the queue.

Accepted shapes: an array of URL strings or objects with url, link or href;
an object with an array under urls, list or items; or an object whose first
array member holds the URLs. URLs already queued are skipped. Use "-" to
read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service, _ *commandEnv) error {
				return runImport(cmd, svc, args[0])
			})
		},
	}
}

func runImport(cmd *cobra.Command, svc *api.Service, source string) error {
	var r io.Reader
	if source == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()
		r = file
	}

	snap, _, err := svc.Import(cmd.Context(), r)
	if err := reportStatus(cmd, svc, err); err != nil {
		return err
	}
	printQueue(cmd.OutOrStdout(), snap)
	return nil
}
