package stacker

import (
	"errors"
	"path/filepath"
)

// ErrFolderMissing marks a category folder that disappeared between
// enumeration and unstacking.
var ErrFolderMissing = errors.New("folder not found")

// EventType names what happened to an entry during a run.
type EventType string

const (
	EventMoved          EventType = "moved"
	EventRenamed        EventType = "renamed"
	EventSkipped        EventType = "skipped"
	EventFolderCreated  EventType = "folder_created"
	EventFolderRemoved  EventType = "folder_removed"
	EventFolderMissing  EventType = "folder_missing"
	EventFolderNotEmpty EventType = "folder_not_empty"
	EventMoveFailed     EventType = "move_failed"
)

// Event is a single report line.
type Event struct {
	Type EventType
	// Name is the entry or folder the event is about, relative to the root.
	Name string
	// Folder is the category folder involved, if any.
	Folder string
	// Target is the final path of a moved entry, relative to the root.
	Target string
	// Reason explains skipped entries.
	Reason string
	Err    error
}

// Report collects the events of one run in order.
type Report struct {
	Root   string
	Events []Event
}

func (r *Report) add(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many events of the given types were recorded.
func (r *Report) Count(types ...EventType) int {
	n := 0
	for _, e := range r.Events {
		for _, t := range types {
			if e.Type == t {
				n++
				break
			}
		}
	}
	return n
}

// Moved returns the number of entries relocated, renamed or not.
func (r *Report) Moved() int {
	return r.Count(EventMoved, EventRenamed)
}

// Failed returns the number of entries that could not be moved.
func (r *Report) Failed() int {
	return r.Count(EventMoveFailed)
}

// Filter returns the events of the given type.
func (r *Report) Filter(t EventType) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *Report) rel(path string) string {
	if rel, err := filepath.Rel(r.Root, path); err == nil {
		return rel
	}
	return path
}
