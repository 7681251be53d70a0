package history

import (
	"github.com/dshills/linestorm/internal/engine/buffer"
)

// Stack holds the undo and redo sides of a session's edit history.
// Entries on the undo side are the states that preceded each closed
// transaction, oldest first.
type Stack struct {
	undo []buffer.Snapshot
	redo []buffer.Snapshot

	// maxEntries caps the undo side; 0 means unbounded.
	maxEntries int
}

// NewStack creates an empty stack. maxEntries of 0 leaves the stack
// unbounded for the session's lifetime.
func NewStack(maxEntries int) *Stack {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Stack{maxEntries: maxEntries}
}

// Record pushes the state captured before a transaction onto the undo
// side and discards the redo side.
func (s *Stack) Record(snap buffer.Snapshot) {
	s.undo = append(s.undo, snap)
	s.redo = nil

	if s.maxEntries > 0 && len(s.undo) > s.maxEntries {
		excess := len(s.undo) - s.maxEntries
		s.undo = s.undo[excess:]
	}
}

// Undo exchanges the current state for the most recent undo entry.
// Returns ok=false and leaves the stack untouched when the undo side is
// empty.
func (s *Stack) Undo(current buffer.Snapshot) (buffer.Snapshot, bool) {
	if len(s.undo) == 0 {
		return buffer.Snapshot{}, false
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current)
	return top, true
}

// Redo exchanges the current state for the most recent redo entry.
// Returns ok=false and leaves the stack untouched when the redo side is
// empty.
func (s *Stack) Redo(current buffer.Snapshot) (buffer.Snapshot, bool) {
	if len(s.redo) == 0 {
		return buffer.Snapshot{}, false
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current)
	return top, true
}

// CanUndo returns true if the undo side is non-empty.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo returns true if the redo side is non-empty.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoCount returns the number of undo entries.
func (s *Stack) UndoCount() int {
	return len(s.undo)
}

// RedoCount returns the number of redo entries.
func (s *Stack) RedoCount() int {
	return len(s.redo)
}

// Clear removes all entries from both sides.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

// SetMaxEntries changes the undo-side cap, trimming oldest entries when
// the current stack exceeds it. 0 removes the cap.
func (s *Stack) SetMaxEntries(max int) {
	if max < 0 {
		max = 0
	}
	s.maxEntries = max
	if max > 0 && len(s.undo) > max {
		excess := len(s.undo) - max
		s.undo = s.undo[excess:]
	}
}
