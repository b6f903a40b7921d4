// Package api maps reelq gestures onto the queue and the viewer.
//
// Service is the single entry point used by the CLI, the interactive shell,
// the autoplay scheduler and the import watcher. Every operation returns a
// Snapshot of the queue as it stands afterwards so callers can re-render the
// numbered list, and import results are reported as short Status texts that
// a StatusBoard keeps only for a few seconds.
package api
