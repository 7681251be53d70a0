package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/engine/history"
)

// Engine owns the buffer and undo stack for one editing session and
// interprets Commands against them. It is single-threaded by design:
// one command is fully applied before the next is read.
type Engine struct {
	buf  *buffer.Buffer
	undo *history.Stack

	// cutBuffer holds the most recent cut text for paste commands.
	cutBuffer string

	// lastKind tracks the previous command for insert coalescing. A
	// value of KindNone means no transaction is open.
	lastKind Kind
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxUndoEntries caps the undo stack. 0 (the default) leaves it
// unbounded for the session.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		e.undo.SetMaxEntries(max)
	}
}

// New creates an engine with an empty buffer.
func New(opts ...Option) *Engine {
	e := &Engine{
		buf:  buffer.New(),
		undo: history.NewStack(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Buffer exposes the live buffer for read-only collaborators (layout,
// completion). Mutations must go through Apply.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Text returns the current buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Cursor returns the cursor's grapheme index.
func (e *Engine) Cursor() int {
	return e.buf.Cursor()
}

// IsEmpty returns true when the buffer holds no text.
func (e *Engine) IsEmpty() bool {
	return e.buf.IsEmpty()
}

// CutBuffer returns the current cut-buffer content.
func (e *Engine) CutBuffer() string {
	return e.cutBuffer
}

// CanUndo returns true if an undo entry is available.
func (e *Engine) CanUndo() bool {
	return e.undo.CanUndo()
}

// CanRedo returns true if a redo entry is available.
func (e *Engine) CanRedo() bool {
	return e.undo.CanRedo()
}

// LoadText replaces the whole buffer, as history navigation does. The
// replacement is its own transaction boundary.
func (e *Engine) LoadText(s string) {
	e.openTransaction(KindNone)
	e.buf.SetText(s)
}

// SnapshotText returns the buffer content for the history collaborator.
func (e *Engine) SnapshotText() string {
	return e.buf.Text()
}

// ResetUndo clears undo/redo history, keeping the buffer.
func (e *Engine) ResetUndo() {
	e.undo.Clear()
	e.lastKind = KindNone
}

// Reset clears the buffer and all session state, ready for a new line.
func (e *Engine) Reset() {
	e.buf = buffer.New()
	e.undo.Clear()
	e.lastKind = KindNone
}

// Apply executes one command. Inapplicable commands are no-ops; Apply
// never fails.
func (e *Engine) Apply(cmd Command) {
	switch cmd.Kind.class() {
	case undoIgnore:
		e.closeTransaction()
		e.applyMovement(cmd)
	case undoControl:
		e.closeTransaction()
		e.applyHistory(cmd)
	case undoCoalesce, undoFull:
		e.applyMutation(cmd)
	}
}

func (e *Engine) closeTransaction() {
	e.lastKind = KindNone
}

// openTransaction records the pre-mutation snapshot unless the command
// coalesces with the open transaction.
func (e *Engine) openTransaction(kind Kind) {
	if kind == KindInsertChar && e.lastKind == KindInsertChar {
		return
	}
	e.undo.Record(e.buf.Snapshot())
	e.lastKind = kind
}

func (e *Engine) applyHistory(cmd Command) {
	switch cmd.Kind {
	case KindUndo:
		if snap, ok := e.undo.Undo(e.buf.Snapshot()); ok {
			e.buf.Restore(snap)
		}
	case KindRedo:
		if snap, ok := e.undo.Redo(e.buf.Snapshot()); ok {
			e.buf.Restore(snap)
		}
	}
}

func (e *Engine) applyMovement(cmd Command) {
	b := e.buf
	switch cmd.Kind {
	case KindMoveToStart:
		b.SetCursor(0)
	case KindMoveToEnd:
		b.SetCursor(b.Len())
	case KindMoveToLineStart:
		b.SetCursor(b.LineStart())
	case KindMoveToLineEnd:
		b.SetCursor(b.LineEnd())
	case KindMoveLeft:
		b.SetCursor(b.Cursor() - 1)
	case KindMoveRight:
		b.SetCursor(b.Cursor() + 1)
	case KindMoveWordLeft:
		b.SetCursor(b.WordLeft())
	case KindMoveWordRight:
		b.SetCursor(b.WordRight())
	case KindMoveLineUp:
		b.SetCursor(b.LineUp())
	case KindMoveLineDown:
		b.SetCursor(b.LineDown())
	case KindMoveRightUntil:
		if i, ok := b.FindRight(string(cmd.Rune), false); ok {
			b.SetCursor(i)
		}
	case KindMoveRightBefore:
		if i, ok := b.FindRight(string(cmd.Rune), true); ok {
			b.SetCursor(i)
		}
	case KindMoveLeftUntil:
		if i, ok := b.FindLeft(string(cmd.Rune), false); ok {
			b.SetCursor(i)
		}
	case KindMoveLeftBefore:
		if i, ok := b.FindLeft(string(cmd.Rune), true); ok {
			b.SetCursor(i)
		}
	case KindSelectAll:
		b.SelectAll()
	case KindStartSelection:
		b.StartSelection()
	case KindDropSelection:
		b.DropSelection()
	}
}

func (e *Engine) applyMutation(cmd Command) {
	b := e.buf
	// Any mutation other than InsertChar breaks a typing run, even when
	// it turns out to be a no-op.
	if cmd.Kind != KindInsertChar {
		e.lastKind = KindNone
	}
	switch cmd.Kind {
	case KindInsertChar:
		e.openTransaction(KindInsertChar)
		b.Insert(string(cmd.Rune))
	case KindInsertText:
		if cmd.Text == "" {
			return
		}
		e.openTransaction(KindNone)
		b.Insert(cmd.Text)
	case KindInsertNewline:
		e.openTransaction(KindNone)
		b.Insert("\n")
	case KindBackspace:
		e.deleteRange(b.Cursor()-1, b.Cursor(), false)
	case KindDelete:
		e.deleteRange(b.Cursor(), b.Cursor()+1, false)
	case KindBackspaceWord:
		e.deleteRange(b.WordLeft(), b.Cursor(), false)
	case KindDeleteWord:
		e.deleteRange(b.Cursor(), b.WordRight(), false)
	case KindClear:
		e.deleteRange(0, b.Len(), false)
	case KindClearToLineEnd:
		e.deleteRange(b.Cursor(), b.LineEnd(), false)
	case KindCutFromStart:
		e.deleteRange(0, b.Cursor(), true)
	case KindCutFromLineStart:
		e.deleteRange(b.LineStart(), b.Cursor(), true)
	case KindCutToEnd:
		e.deleteRange(b.Cursor(), b.Len(), true)
	case KindCutToLineEnd:
		e.deleteRange(b.Cursor(), b.LineEnd(), true)
	case KindCutCurrentLine:
		e.cutCurrentLine()
	case KindCutWordLeft:
		e.deleteRange(b.WordLeft(), b.Cursor(), true)
	case KindCutWordRight:
		e.deleteRange(b.Cursor(), b.WordRight(), true)
	case KindCutSelection:
		if start, end, ok := b.SelectionRange(); ok {
			e.deleteRange(start, end, true)
		}
	case KindCutRightUntil:
		if i, ok := b.FindRight(string(cmd.Rune), false); ok {
			e.deleteRange(b.Cursor(), i+1, true)
		}
	case KindCutRightBefore:
		if i, ok := b.FindRight(string(cmd.Rune), true); ok {
			e.deleteRange(b.Cursor(), i+1, true)
		}
	case KindCutLeftUntil:
		if i, ok := b.FindLeft(string(cmd.Rune), false); ok {
			e.deleteRange(i, b.Cursor(), true)
		}
	case KindCutLeftBefore:
		if i, ok := b.FindLeft(string(cmd.Rune), true); ok {
			e.deleteRange(i, b.Cursor(), true)
		}
	case KindPasteBefore:
		if e.cutBuffer == "" {
			return
		}
		e.openTransaction(KindNone)
		b.Insert(e.cutBuffer)
	case KindPasteAfter:
		if e.cutBuffer == "" {
			return
		}
		e.openTransaction(KindNone)
		if b.Cursor() < b.Len() {
			b.SetCursor(b.Cursor() + 1)
		}
		b.Insert(e.cutBuffer)
	case KindUppercaseWord:
		e.mapWord(strings.ToUpper)
	case KindLowercaseWord:
		e.mapWord(strings.ToLower)
	case KindCapitalizeChar:
		e.capitalizeChar()
	case KindSwapWords:
		e.swapWords()
	case KindSwapGraphemes:
		e.swapGraphemes()
	case KindReplaceRange:
		if cmd.Start == cmd.End && cmd.Text == "" {
			return
		}
		e.openTransaction(KindNone)
		b.Replace(cmd.Start, cmd.End, cmd.Text)
	}
}

// deleteRange removes [start, end) inside its own transaction. Empty
// ranges record nothing. When cut is true the removed text fills the
// cut buffer.
func (e *Engine) deleteRange(start, end int, cut bool) {
	b := e.buf
	if start < 0 {
		start = 0
	}
	if end > b.Len() {
		end = b.Len()
	}
	if start >= end {
		return
	}
	e.openTransaction(KindNone)
	removed := b.Delete(start, end)
	if cut {
		e.cutBuffer = removed
	}
}

// cutCurrentLine removes the cursor's full line including its trailing
// newline, leaving the cursor at the start of the following content.
func (e *Engine) cutCurrentLine() {
	b := e.buf
	start := b.LineStart()
	end := b.LineEnd()
	if end < b.Len() {
		end++ // take the newline with the line
	}
	e.deleteRange(start, end, true)
}

// mapWord rewrites the word at or after the cursor through fn and
// leaves the cursor past it.
func (e *Engine) mapWord(fn func(string) string) {
	b := e.buf
	start := b.Cursor()
	end := b.WordRight()
	if start >= end {
		return
	}
	word := b.TextRange(start, end)
	mapped := fn(word)
	if mapped == word {
		b.SetCursor(end)
		return
	}
	e.openTransaction(KindNone)
	b.Replace(start, end, mapped)
}

// capitalizeChar uppercases the cluster at the cursor and advances past
// it.
func (e *Engine) capitalizeChar() {
	b := e.buf
	g, ok := b.Grapheme(b.Cursor())
	if !ok {
		return
	}
	r, size := utf8.DecodeRuneInString(g)
	upper := string(unicode.ToUpper(r)) + g[size:]
	if upper == g {
		b.SetCursor(b.Cursor() + 1)
		return
	}
	e.openTransaction(KindNone)
	b.Replace(b.Cursor(), b.Cursor()+1, upper)
}

// swapGraphemes exchanges the clusters on either side of the cursor
// (the classic transpose). At the end of the buffer it swaps the final
// two clusters.
func (e *Engine) swapGraphemes() {
	b := e.buf
	i := b.Cursor()
	if b.Len() < 2 {
		return
	}
	if i == 0 {
		return
	}
	if i >= b.Len() {
		i = b.Len() - 1
	}
	left, _ := b.Grapheme(i - 1)
	right, _ := b.Grapheme(i)
	e.openTransaction(KindNone)
	b.Replace(i-1, i+1, right+left)
}

// swapWords exchanges the word before the cursor with the word after
// it. A no-op when either side has no word.
func (e *Engine) swapWords() {
	b := e.buf
	leftStart := b.WordLeft()
	leftEnd := b.Cursor()
	for leftEnd > leftStart {
		if g, _ := b.Grapheme(leftEnd - 1); !isSpaceCluster(g) {
			break
		}
		leftEnd--
	}
	rightEnd := b.WordRight()
	rightStart := rightEnd
	for rightStart > b.Cursor() {
		if g, _ := b.Grapheme(rightStart - 1); isSpaceCluster(g) {
			break
		}
		rightStart--
	}
	if leftStart >= leftEnd || rightStart >= rightEnd || leftEnd > rightStart {
		return
	}
	left := b.TextRange(leftStart, leftEnd)
	middle := b.TextRange(leftEnd, rightStart)
	right := b.TextRange(rightStart, rightEnd)
	e.openTransaction(KindNone)
	b.Replace(leftStart, rightEnd, right+middle+left)
}

func isSpaceCluster(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return unicode.IsSpace(r)
}
