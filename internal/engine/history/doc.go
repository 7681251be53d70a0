// Package history implements the linear undo/redo stack for an editing
// session.
//
// Entries are buffer snapshots recorded at transaction boundaries. The
// stack has two disjoint sides: undoing moves the current state to the
// redo side and restores the top of the undo side; redoing is the
// mirror image. Recording a fresh entry discards the redo side, the
// conventional linear-history behavior.
package history
