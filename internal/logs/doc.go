// Package logs reads and follows the reelq log file for `reelq logs`.
//
// Last returns the trailing lines with bounded memory, and Follow streams
// lines appended afterwards until the context ends.
package logs
