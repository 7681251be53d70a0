// Package completion produces suggestions for the text around the
// cursor. A suggestion carries the grapheme span it replaces so the
// session can splice it into the buffer as a single undoable edit. The
// built-in completer indexes a word list in a trie; a history-backed
// completer and the inline hinter build on the same interface.
package completion
