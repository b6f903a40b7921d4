package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"reelq/internal/api"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiBlue  = "\033[34m"
)

// printQueue renders the numbered queue: a table on a terminal, plain
// "N. url" lines otherwise.
func printQueue(w io.Writer, snap api.Snapshot) {
	if len(snap.Entries) == 0 {
		fmt.Fprintln(w, "Queue is empty.")
		return
	}
	if !isTerminal(w) {
		for _, line := range snap.Lines() {
			fmt.Fprintln(w, line)
		}
		return
	}
	fmt.Fprintln(w, renderQueueTable(snap))
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStatus writes a status line, colored on a terminal.
func printStatus(w io.Writer, status api.Status) {
	if status.IsZero() {
		return
	}
	line := status.Text
	if isTerminal(w) {
		color := ansiBlue
		if status.Kind == api.StatusError {
			color = ansiRed
		}
		line = color + line + ansiReset
	}
	fmt.Fprintln(w, line)
}

// isTerminal reports whether v is a terminal-backed *os.File.
func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
