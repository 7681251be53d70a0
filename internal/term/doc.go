// Package term is the boundary to the real terminal: raw mode entry
// and restore, size queries, and an ANSI sink that translates renderer
// operations into escape sequences. Everything above this package is
// pure; everything below it is the operating system.
package term
