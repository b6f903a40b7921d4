// Package reels owns the queue of reel URLs.
//
// Queue persists an ordered []string under the reelsQueue key of a
// kvstore.Store and exposes the mutations the CLI gestures need: append,
// rotate-left, clear, and a bulk JSON import that merges new URLs while
// skipping ones already queued. Every mutation runs under a kvstore.Locker,
// so concurrent reelq processes cannot lose each other's updates.
//
// Import documents are interpreted by an ordered list of Extractors; the
// first one that yields URLs wins.
package reels
