package buffer

// Snapshot is an immutable copy of buffer text and cursor position,
// recorded at transaction boundaries by the undo machinery. It never
// aliases live buffer state.
type Snapshot struct {
	Text   string
	Cursor int
}

// Snapshot captures the current text and cursor.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		Text:   b.Text(),
		Cursor: b.cursor,
	}
}

// Restore replaces the buffer content and cursor from a snapshot. The
// selection is dropped and the cursor clamped to the restored text.
func (b *Buffer) Restore(s Snapshot) {
	b.graphemes = Split(s.Text)
	b.cursor = s.Cursor
	b.anchor = -1
	b.clampState()
}
