package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyQueue is returned by Open when there is nothing to show.
var ErrEmptyQueue = errors.New("queue is empty")

// EmptyQueueMessage is the operator-facing text for ErrEmptyQueue.
const EmptyQueueMessage = "Queue is empty. Add a reel URL first."

// Entry is one numbered queue line.
type Entry struct {
	Position int    `json:"position"`
	URL      string `json:"url"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%d. %s", e.Position, e.URL)
}

// Snapshot is the queue after an operation.
type Snapshot struct {
	Queue   []string `json:"queue"`
	Entries []Entry  `json:"entries"`
	// Current is the URL at the head of the queue, empty when the queue is.
	Current string `json:"current,omitempty"`
}

// NewSnapshot numbers items from 1.
func NewSnapshot(items []string) Snapshot {
	if items == nil {
		items = []string{}
	}
	entries := make([]Entry, len(items))
	for i, url := range items {
		entries[i] = Entry{Position: i + 1, URL: url}
	}
	snap := Snapshot{Queue: items, Entries: entries}
	if len(items) > 0 {
		snap.Current = items[0]
	}
	return snap
}

// Lines renders the numbered list, one entry per line.
func (s Snapshot) Lines() []string {
	lines := make([]string, len(s.Entries))
	for i, entry := range s.Entries {
		lines[i] = entry.String()
	}
	return lines
}

// StatusKind classifies a Status.
type StatusKind string

const (
	StatusInfo  StatusKind = "info"
	StatusError StatusKind = "error"
)

// Status is a transient message for the operator.
type Status struct {
	Kind StatusKind `json:"kind"`
	Text string     `json:"text"`
	At   time.Time  `json:"at"`
}

// IsZero reports whether no status is set.
func (s Status) IsZero() bool {
	return s.Text == ""
}
