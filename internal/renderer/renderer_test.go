package renderer

import (
	"errors"
	"testing"

	"github.com/dshills/linestorm/internal/renderer/core"
	"github.com/dshills/linestorm/internal/renderer/layout"
)

func prompt(s string) layout.PromptSpec {
	return layout.PromptSpec{Left: core.StyledRun{Text: s, Style: core.DefaultStyle()}}
}

func render(t *testing.T, r *Renderer, text string, cursor, width int) {
	t.Helper()
	l := layout.Compute(prompt("> "), text, cursor, width, nil)
	if err := r.Render(l); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestRenderInitialPaint(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello", 5, 80)

	ops := sink.Ops()
	if len(ops) == 0 {
		t.Fatal("expected ops on first render")
	}
	var wrote string
	for _, op := range ops {
		if op.Kind == OpWrite {
			wrote += op.Text
		}
	}
	if wrote != "> hello" {
		t.Errorf("written text = %q, want %q", wrote, "> hello")
	}
	last := ops[len(ops)-1]
	if last.Kind != OpMoveTo || last.Pos.Row != 0 || last.Pos.Col != 7 {
		t.Errorf("final op = %v, want move to (0,7)", last)
	}
}

func TestRenderIdempotent(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello", 5, 80)
	sink.Reset()

	render(t, r, "hello", 5, 80)
	if got := len(sink.Ops()); got != 0 {
		t.Errorf("second identical render emitted %d ops: %v", got, sink.Ops())
	}
}

func TestRenderCursorOnlyMove(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello", 5, 80)
	sink.Reset()

	render(t, r, "hello", 2, 80)
	ops := sink.Ops()
	if len(ops) != 1 {
		t.Fatalf("expected exactly one op, got %d: %v", len(ops), ops)
	}
	if ops[0].Kind != OpMoveTo || ops[0].Pos.Col != 4 {
		t.Errorf("op = %v, want move to (0,4)", ops[0])
	}
}

func TestRenderAppendRewritesTailOnly(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hell", 4, 80)
	sink.Reset()

	render(t, r, "hello", 5, 80)
	for _, op := range sink.Ops() {
		if op.Kind == OpWrite {
			if op.Text != "o" {
				t.Errorf("rewrote %q, want only the appended %q", op.Text, "o")
			}
			if op.Pos.Col != 6 {
				t.Errorf("write at col %d, want 6", op.Pos.Col)
			}
		}
	}
}

func TestRenderShrinkClearsTail(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello world", 11, 80)
	sink.Reset()

	render(t, r, "hello", 5, 80)
	var cleared bool
	for _, op := range sink.Ops() {
		if op.Kind == OpClearToEnd && op.Pos.Row == 0 {
			cleared = true
			if op.Pos.Col != 7 {
				t.Errorf("clear at col %d, want 7", op.Pos.Col)
			}
		}
	}
	if !cleared {
		t.Error("expected a clear-to-end after shrinking the line")
	}
}

func TestRenderRowDisappears(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "ab\ncd", 5, 80)
	sink.Reset()

	render(t, r, "ab", 2, 80)
	var clearedRow1 bool
	for _, op := range sink.Ops() {
		if op.Kind == OpClearToEnd && op.Pos.Row == 1 {
			clearedRow1 = true
		}
	}
	if !clearedRow1 {
		t.Error("expected row 1 to be cleared when it disappears")
	}
}

func TestRenderStyleChangeRewrites(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	plain := layout.Compute(prompt(""), "abc", 0, 80, nil)
	if err := r.Render(plain); err != nil {
		t.Fatal(err)
	}
	sink.Reset()

	red := core.NewStyle(core.ColorRed)
	styled := layout.Compute(prompt(""), "abc", 0, 80, []core.StyleSpan{{Start: 0, End: 3, Style: red}})
	if err := r.Render(styled); err != nil {
		t.Fatal(err)
	}
	var wrote bool
	for _, op := range sink.Ops() {
		if op.Kind == OpWrite {
			wrote = true
			if !op.Style.Foreground.Equals(core.ColorRed) {
				t.Errorf("write style = %+v, want red foreground", op.Style)
			}
		}
	}
	if !wrote {
		t.Error("style-only change must rewrite the affected cells")
	}
}

func TestRenderInvalidateRepaints(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello", 5, 80)
	sink.Reset()

	r.Invalidate()
	render(t, r, "hello", 5, 80)
	var wrote string
	for _, op := range sink.Ops() {
		if op.Kind == OpWrite {
			wrote += op.Text
		}
	}
	if wrote != "> hello" {
		t.Errorf("repaint wrote %q, want full row", wrote)
	}
}

func TestRenderResizeRewrap(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	render(t, r, "hello world", 11, 80)

	// Resize: invalidate, then render at the new width.
	r.Invalidate()
	sink.Reset()
	render(t, r, "hello world", 11, 10)

	var wrote string
	for _, op := range sink.Ops() {
		if op.Kind == OpWrite {
			wrote += op.Text
		}
	}
	if wrote != "> hello world" {
		t.Errorf("rewrap wrote %q", wrote)
	}
	last := sink.Ops()[len(sink.Ops())-1]
	if last.Kind != OpMoveTo || last.Pos.Row != 1 || last.Pos.Col != 3 {
		t.Errorf("final cursor op = %v, want move to (1,3)", last)
	}
}

type failSink struct{ err error }

func (s *failSink) Apply([]Op) error { return s.err }

func TestRenderSinkErrorInvalidates(t *testing.T) {
	boom := errors.New("boom")
	fs := &failSink{err: boom}
	r := New(fs)

	l := layout.Compute(prompt("> "), "x", 1, 80, nil)
	if err := r.Render(l); !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}

	// After the failure the renderer must not assume the screen matches
	// the attempted frame.
	sink := &NullSink{}
	r.sink = sink
	if err := r.Render(l); err != nil {
		t.Fatal(err)
	}
	if len(sink.Ops()) == 0 {
		t.Error("render after sink failure should repaint")
	}
}

func TestRowCount(t *testing.T) {
	sink := &NullSink{}
	r := New(sink)
	if r.RowCount() != 0 {
		t.Errorf("empty renderer row count = %d", r.RowCount())
	}
	render(t, r, "ab\ncd\nef", 8, 80)
	if r.RowCount() != 3 {
		t.Errorf("row count = %d, want 3", r.RowCount())
	}
}
