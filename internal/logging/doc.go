// Package logging assembles the structured slog loggers used by reelq.
//
// It owns the console and JSON handlers, routes output to the log file (and
// stderr when requested), and stamps every record of one CLI invocation with
// a session_id so interleaved runs can be told apart in the shared log file.
// NewNop returns a discarding logger for tests and optional wiring.
package logging
