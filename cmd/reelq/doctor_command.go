package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reelq/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the data directory, state database and browser connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			if asJSON {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				renderPreflight(cmd, results)
			}
			if preflight.Failed(results) {
				return reportedError{err: errors.New("preflight checks failed")}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

func renderPreflight(cmd *cobra.Command, results []preflight.Result) {
	out := cmd.OutOrStdout()
	colorize := isTerminal(out)
	for _, r := range results {
		label, color := "OK", ansiGreen
		if !r.Passed {
			label, color = "FAIL", ansiRed
		}
		if colorize {
			label = color + label + ansiReset
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", label, r.Name, r.Detail)
	}
}
