// Package main hosts the reelq CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal gestures onto api.Service: add,
// open, next, clear and import mutate the queue and drive the viewer tab,
// while shell, play and watch keep a session open. Configuration, logging,
// the state database and the browser connection are resolved once per
// invocation by commandContext so subcommands only describe user experience.
package main
