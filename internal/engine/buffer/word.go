package buffer

import (
	"unicode"
	"unicode/utf8"
)

// charClass buckets a grapheme for word-boundary purposes.
type charClass int

const (
	classWhitespace charClass = iota
	classWord                 // letters, digits, combining marks, underscore
	classPunct                // everything else
)

// classify buckets a cluster by its first code point. Multi-code-point
// clusters (emoji, combined characters) count as word characters.
func classify(cluster string) charClass {
	r, size := utf8.DecodeRuneInString(cluster)
	if size < len(cluster) {
		return classWord
	}
	switch {
	case unicode.IsSpace(r):
		return classWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
		return classWord
	default:
		return classPunct
	}
}

// WordLeft returns the index of the start of the word at or before the
// cursor: skip whitespace leftward, then take clusters of the same class.
func (b *Buffer) WordLeft() int {
	i := b.cursor
	for i > 0 && classify(b.graphemes[i-1]) == classWhitespace {
		i--
	}
	if i == 0 {
		return 0
	}
	class := classify(b.graphemes[i-1])
	for i > 0 && classify(b.graphemes[i-1]) == class {
		i--
	}
	return i
}

// WordRight returns the index just past the end of the word at or after
// the cursor.
func (b *Buffer) WordRight() int {
	i := b.cursor
	n := len(b.graphemes)
	for i < n && classify(b.graphemes[i]) == classWhitespace {
		i++
	}
	if i == n {
		return n
	}
	class := classify(b.graphemes[i])
	for i < n && classify(b.graphemes[i]) == class {
		i++
	}
	return i
}

// WordRightStart returns the index of the start of the next word after
// the cursor (vi-style "w" motion target).
func (b *Buffer) WordRightStart() int {
	i := b.cursor
	n := len(b.graphemes)
	if i >= n {
		return n
	}
	class := classify(b.graphemes[i])
	for i < n && classify(b.graphemes[i]) == class {
		i++
	}
	for i < n && classify(b.graphemes[i]) == classWhitespace {
		i++
	}
	return i
}

// LineStart returns the index of the first cluster of the cursor's line.
func (b *Buffer) LineStart() int {
	i := b.cursor
	for i > 0 && b.graphemes[i-1] != "\n" {
		i--
	}
	return i
}

// LineEnd returns the index of the cursor line's newline cluster, or
// Len when the cursor is on the last line.
func (b *Buffer) LineEnd() int {
	i := b.cursor
	n := len(b.graphemes)
	for i < n && b.graphemes[i] != "\n" {
		i++
	}
	return i
}

// Column returns the cursor's offset within its line.
func (b *Buffer) Column() int {
	return b.cursor - b.LineStart()
}

// IsAtFirstLine returns true when no newline precedes the cursor.
func (b *Buffer) IsAtFirstLine() bool {
	return b.LineStart() == 0
}

// IsAtLastLine returns true when no newline follows the cursor.
func (b *Buffer) IsAtLastLine() bool {
	return b.LineEnd() == len(b.graphemes)
}

// LineUp returns the cursor index one line up, keeping the column where
// the previous line allows. Returns the current cursor when already on
// the first line.
func (b *Buffer) LineUp() int {
	start := b.LineStart()
	if start == 0 {
		return b.cursor
	}
	col := b.cursor - start
	prevEnd := start - 1 // index of the newline ending the previous line
	prevStart := prevEnd
	for prevStart > 0 && b.graphemes[prevStart-1] != "\n" {
		prevStart--
	}
	if col > prevEnd-prevStart {
		col = prevEnd - prevStart
	}
	return prevStart + col
}

// LineDown returns the cursor index one line down, keeping the column
// where the next line allows. Returns the current cursor when already on
// the last line.
func (b *Buffer) LineDown() int {
	end := b.LineEnd()
	n := len(b.graphemes)
	if end == n {
		return b.cursor
	}
	col := b.cursor - b.LineStart()
	nextStart := end + 1
	nextEnd := nextStart
	for nextEnd < n && b.graphemes[nextEnd] != "\n" {
		nextEnd++
	}
	if col > nextEnd-nextStart {
		col = nextEnd - nextStart
	}
	return nextStart + col
}

// FindRight returns the index of the next occurrence of the cluster ch
// strictly after the cursor. When before is true the returned index
// stops one cluster short of the match.
func (b *Buffer) FindRight(ch string, before bool) (int, bool) {
	for i := b.cursor + 1; i < len(b.graphemes); i++ {
		if b.graphemes[i] == ch {
			if before {
				return i - 1, true
			}
			return i, true
		}
	}
	return b.cursor, false
}

// FindLeft returns the index of the previous occurrence of the cluster
// ch strictly before the cursor. When before is true the returned index
// stops one cluster past the match.
func (b *Buffer) FindLeft(ch string, before bool) (int, bool) {
	for i := b.cursor - 1; i >= 0; i-- {
		if b.graphemes[i] == ch {
			if before {
				return i + 1, true
			}
			return i, true
		}
	}
	return b.cursor, false
}
