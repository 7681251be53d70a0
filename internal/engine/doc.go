// Package engine applies edit commands to a line buffer inside undo
// transactions.
//
// The Engine is the seam between key decoding and the buffer: an
// external keymap layer produces Commands, the engine maps each onto
// buffer primitives and manages transaction boundaries for the undo
// stack. Consecutive character insertions coalesce into one undo step;
// movement, undo/redo and every other mutation close the open
// transaction. Inapplicable commands (backspace at the start, undo with
// an empty stack) are silent no-ops, never errors.
package engine
