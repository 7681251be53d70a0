package buffer

import (
	"strings"
)

// Buffer is an ordered sequence of grapheme clusters with a cursor and
// an optional selection anchor. The zero value is not usable; call New
// or NewFromString.
type Buffer struct {
	graphemes []string
	cursor    int
	anchor    int // -1 when no selection is active
}

// New creates an empty buffer with the cursor at position 0.
func New() *Buffer {
	return &Buffer{anchor: -1}
}

// NewFromString creates a buffer holding the given text with the cursor
// at the end.
func NewFromString(s string) *Buffer {
	b := New()
	b.graphemes = Split(s)
	b.cursor = len(b.graphemes)
	return b
}

// Len returns the number of grapheme clusters in the buffer.
func (b *Buffer) Len() int {
	return len(b.graphemes)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.graphemes) == 0
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return strings.Join(b.graphemes, "")
}

// TextRange returns the text of the grapheme range [start, end),
// clamped to the buffer.
func (b *Buffer) TextRange(start, end int) string {
	start = b.clampIndex(start)
	end = b.clampIndex(end)
	if start >= end {
		return ""
	}
	return strings.Join(b.graphemes[start:end], "")
}

// Grapheme returns the cluster at the given index.
func (b *Buffer) Grapheme(i int) (string, bool) {
	if i < 0 || i >= len(b.graphemes) {
		return "", false
	}
	return b.graphemes[i], true
}

// Graphemes returns the cluster sequence. The slice is shared; callers
// must not modify it.
func (b *Buffer) Graphemes() []string {
	return b.graphemes
}

// Cursor returns the cursor's grapheme index.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to the given grapheme index, clamped to
// [0, Len].
func (b *Buffer) SetCursor(i int) {
	b.cursor = b.clampIndex(i)
}

// SetText replaces the entire buffer content and moves the cursor to
// the end. The selection is dropped.
func (b *Buffer) SetText(s string) {
	b.graphemes = Split(s)
	b.cursor = len(b.graphemes)
	b.anchor = -1
}

// Insert splices text at the cursor, advances the cursor past the
// inserted clusters and drops the selection. Empty input is a no-op.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	ins := Split(s)
	b.graphemes = splice(b.graphemes, b.cursor, b.cursor, ins)
	b.cursor += len(ins)
	b.anchor = -1
}

// Delete removes the grapheme range [start, end) and moves the cursor to
// the range start. The range is clamped to the buffer; an empty range is
// a no-op. Returns the removed text.
func (b *Buffer) Delete(start, end int) string {
	start = b.clampIndex(start)
	end = b.clampIndex(end)
	if start >= end {
		return ""
	}
	removed := strings.Join(b.graphemes[start:end], "")
	b.graphemes = splice(b.graphemes, start, end, nil)
	b.cursor = start
	b.anchor = -1
	return removed
}

// Replace substitutes the grapheme range [start, end) with the given
// text and leaves the cursor after the replacement.
func (b *Buffer) Replace(start, end int, s string) {
	start = b.clampIndex(start)
	end = b.clampIndex(end)
	if start > end {
		start, end = end, start
	}
	ins := Split(s)
	b.graphemes = splice(b.graphemes, start, end, ins)
	b.cursor = start + len(ins)
	b.anchor = -1
}

// StartSelection anchors a selection at the current cursor position.
func (b *Buffer) StartSelection() {
	b.anchor = b.cursor
}

// DropSelection clears the selection anchor.
func (b *Buffer) DropSelection() {
	b.anchor = -1
}

// HasSelection returns true if a selection anchor is set.
func (b *Buffer) HasSelection() bool {
	return b.anchor >= 0
}

// SelectionRange returns the normalized (min, max) of anchor and cursor,
// or ok=false when no selection is active.
func (b *Buffer) SelectionRange() (start, end int, ok bool) {
	if b.anchor < 0 {
		return 0, 0, false
	}
	start, end = b.anchor, b.cursor
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// SelectAll selects the whole buffer, cursor at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.graphemes)
}

func (b *Buffer) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(b.graphemes) {
		return len(b.graphemes)
	}
	return i
}

// clampState restores the core invariant after bulk content changes.
func (b *Buffer) clampState() {
	b.cursor = b.clampIndex(b.cursor)
	if b.anchor > len(b.graphemes) {
		b.anchor = len(b.graphemes)
	}
}

func splice(s []string, start, end int, ins []string) []string {
	out := make([]string, 0, len(s)-(end-start)+len(ins))
	out = append(out, s[:start]...)
	out = append(out, ins...)
	out = append(out, s[end:]...)
	return out
}
