// Package session ties the pieces into a line editor: it reads key
// events, resolves them through the keymap, applies edit commands to
// the engine, lays out and renders after every change, and returns the
// finished line with a signal saying how it ended. History recall,
// completion, hints, highlighting and multiline validation all hang
// off this loop.
package session
