package engine

import (
	"testing"
)

func typeString(e *Engine, s string) {
	for _, r := range s {
		e.Apply(InsertChar(r))
	}
}

func TestInsertChar(t *testing.T) {
	e := New()
	typeString(e, "abc")

	if e.Text() != "abc" {
		t.Errorf("expected %q, got %q", "abc", e.Text())
	}

	if e.Cursor() != 3 {
		t.Errorf("expected cursor 3, got %d", e.Cursor())
	}
}

func TestTypingCoalescesIntoOneUndoStep(t *testing.T) {
	e := New()
	typeString(e, "abc")

	e.Apply(Command{Kind: KindUndo})

	if e.Text() != "" {
		t.Errorf("one undo should remove the whole typed run, got %q", e.Text())
	}

	if e.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", e.Cursor())
	}
}

func TestMovementClosesTransaction(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.Apply(Command{Kind: KindMoveLeft})
	e.Apply(Command{Kind: KindMoveRight})
	typeString(e, "cd")

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "ab" {
		t.Errorf("expected %q after first undo, got %q", "ab", e.Text())
	}

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "" {
		t.Errorf("expected empty after second undo, got %q", e.Text())
	}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e := New()
	typeString(e, "hello world")
	e.Apply(Command{Kind: KindMoveWordLeft})

	before := e.Buffer().Snapshot()
	e.Apply(Command{Kind: KindCutToEnd})
	after := e.Buffer().Snapshot()

	e.Apply(Command{Kind: KindUndo})
	if got := e.Buffer().Snapshot(); got != before {
		t.Errorf("undo restored %+v, want %+v", got, before)
	}

	e.Apply(Command{Kind: KindRedo})
	if got := e.Buffer().Snapshot(); got != after {
		t.Errorf("redo restored %+v, want %+v", got, after)
	}
}

func TestFreshEditClearsRedo(t *testing.T) {
	e := New()
	typeString(e, "abc")
	e.Apply(Command{Kind: KindUndo})

	if !e.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	typeString(e, "x")

	if e.CanRedo() {
		t.Error("fresh mutation should discard the redo side")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	e := New()
	e.Apply(Command{Kind: KindUndo})
	e.Apply(Command{Kind: KindRedo})

	if e.Text() != "" || e.Cursor() != 0 {
		t.Error("undo/redo on empty session should change nothing")
	}
}

func TestInsertTextIsAtomic(t *testing.T) {
	e := New()
	typeString(e, "> ")
	e.Apply(InsertText("pasted text"))

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "> " {
		t.Errorf("undo should remove only the paste, got %q", e.Text())
	}

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "" {
		t.Errorf("expected empty, got %q", e.Text())
	}
}

func TestInsertTextDoesNotCoalesceWithTyping(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.Apply(InsertText("XY"))
	typeString(e, "cd")

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "abXY" {
		t.Errorf("expected %q, got %q", "abXY", e.Text())
	}
}

func TestBackspaceWordAtStartIsNoop(t *testing.T) {
	e := New()
	e.Apply(Command{Kind: KindBackspaceWord})

	if e.Text() != "" || e.Cursor() != 0 || e.CanUndo() {
		t.Error("backspace-word on empty buffer should be a silent no-op")
	}

	e = New()
	typeString(e, "abc")
	e.Apply(Command{Kind: KindMoveToStart})
	e.Apply(Command{Kind: KindBackspaceWord})

	if e.Text() != "abc" || e.Cursor() != 0 {
		t.Errorf("backspace-word at cursor 0 changed state: %q cursor %d",
			e.Text(), e.Cursor())
	}
}

func TestCutAndPaste(t *testing.T) {
	e := New()
	typeString(e, "hello world")
	e.Apply(Command{Kind: KindCutWordLeft})

	if e.Text() != "hello " {
		t.Errorf("expected %q, got %q", "hello ", e.Text())
	}

	if e.CutBuffer() != "world" {
		t.Errorf("expected cut buffer %q, got %q", "world", e.CutBuffer())
	}

	e.Apply(Command{Kind: KindPasteBefore})
	if e.Text() != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", e.Text())
	}
}

func TestCutSelection(t *testing.T) {
	e := New()
	typeString(e, "abcdef")
	e.Apply(Command{Kind: KindMoveToStart})
	e.Apply(Command{Kind: KindStartSelection})
	e.Apply(Command{Kind: KindMoveRight})
	e.Apply(Command{Kind: KindMoveRight})
	e.Apply(Command{Kind: KindMoveRight})
	e.Apply(Command{Kind: KindCutSelection})

	if e.Text() != "def" {
		t.Errorf("expected %q, got %q", "def", e.Text())
	}

	if e.CutBuffer() != "abc" {
		t.Errorf("expected cut buffer %q, got %q", "abc", e.CutBuffer())
	}
}

func TestCutSelectionWithoutSelectionIsNoop(t *testing.T) {
	e := New()
	typeString(e, "abc")
	e.Apply(Command{Kind: KindCutSelection})

	if e.Text() != "abc" {
		t.Errorf("expected %q, got %q", "abc", e.Text())
	}
}

func TestClearToLineEnd(t *testing.T) {
	e := New()
	e.Apply(InsertText("one\ntwo three"))
	e.Apply(Command{Kind: KindMoveToLineStart})
	e.Apply(Command{Kind: KindMoveWordRight})
	e.Apply(Command{Kind: KindClearToLineEnd})

	if e.Text() != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", e.Text())
	}
}

func TestSwapGraphemes(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.Apply(Command{Kind: KindSwapGraphemes})

	if e.Text() != "ba" {
		t.Errorf("expected %q, got %q", "ba", e.Text())
	}
}

func TestSwapGraphemesAtStartIsNoop(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.Apply(Command{Kind: KindMoveToStart})
	e.Apply(Command{Kind: KindSwapGraphemes})

	if e.Text() != "ab" {
		t.Errorf("expected %q, got %q", "ab", e.Text())
	}
}

func TestUppercaseWord(t *testing.T) {
	e := New()
	typeString(e, "foo bar")
	e.Apply(Command{Kind: KindMoveToStart})
	e.Apply(Command{Kind: KindUppercaseWord})

	if e.Text() != "FOO bar" {
		t.Errorf("expected %q, got %q", "FOO bar", e.Text())
	}

	if e.Cursor() != 3 {
		t.Errorf("expected cursor past the word, got %d", e.Cursor())
	}
}

func TestSwapWords(t *testing.T) {
	e := New()
	typeString(e, "alpha beta")
	e.Apply(Command{Kind: KindMoveToLineStart})
	e.Apply(Command{Kind: KindMoveWordRight})
	e.Apply(Command{Kind: KindSwapWords})

	if e.Text() != "beta alpha" {
		t.Errorf("expected %q, got %q", "beta alpha", e.Text())
	}
}

func TestReplaceRangeGoesThroughUndo(t *testing.T) {
	e := New()
	typeString(e, "git sta")
	e.Apply(ReplaceRange(4, 7, "status"))

	if e.Text() != "git status" {
		t.Errorf("expected %q, got %q", "git status", e.Text())
	}

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "git sta" {
		t.Errorf("undo should restore pre-completion text, got %q", e.Text())
	}
}

func TestLoadTextIsOwnTransaction(t *testing.T) {
	e := New()
	typeString(e, "typed")
	e.LoadText("from history")

	if e.Text() != "from history" {
		t.Errorf("expected %q, got %q", "from history", e.Text())
	}

	e.Apply(Command{Kind: KindUndo})
	if e.Text() != "typed" {
		t.Errorf("undo should restore the typed line, got %q", e.Text())
	}
}

func TestCutCurrentLineTakesNewline(t *testing.T) {
	e := New()
	e.Apply(InsertText("one\ntwo\nthree"))
	e.Apply(Command{Kind: KindMoveToStart})
	e.Apply(Command{Kind: KindCutCurrentLine})

	if e.Text() != "two\nthree" {
		t.Errorf("expected %q, got %q", "two\nthree", e.Text())
	}

	if e.CutBuffer() != "one\n" {
		t.Errorf("expected cut buffer %q, got %q", "one\n", e.CutBuffer())
	}
}

func TestCommandFromName(t *testing.T) {
	cmd, ok := CommandFromName("cursor.word-left")
	if !ok || cmd.Kind != KindMoveWordLeft {
		t.Errorf("expected MoveWordLeft, got %+v ok=%v", cmd, ok)
	}

	if _, ok := CommandFromName("no.such.command"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestResetClearsEverything(t *testing.T) {
	e := New()
	typeString(e, "abc")
	e.Reset()

	if e.Text() != "" || e.CanUndo() || e.CanRedo() {
		t.Error("reset should clear buffer and history")
	}
}
