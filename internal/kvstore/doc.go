// Package kvstore persists small JSON values under string keys.
//
// Store is the injected get/set contract the queue and viewer packages share.
// SQLiteStore backs it with a single-table SQLite database (WAL, busy-retry)
// and MemoryStore is the in-process variant used by tests. FileLock
// serializes read-modify-write sequences across reelq processes.
//
// The schema is versioned in schema.go; a mismatch asks the user to remove
// the state database rather than migrating it.
package kvstore
