package layout

import (
	"strings"
	"testing"

	"github.com/dshills/linestorm/internal/renderer/core"
)

func plainPrompt(s string) PromptSpec {
	return PromptSpec{Left: core.StyledRun{Text: s, Style: core.DefaultStyle()}}
}

func rowText(r Row) string {
	return r.Text()
}

func TestComputeEmptyBuffer(t *testing.T) {
	l := Compute(plainPrompt("> "), "", 0, 80, nil)
	if len(l.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "> " {
		t.Errorf("row text = %q, want %q", got, "> ")
	}
	if l.Cursor.Row != 0 || l.Cursor.Col != 2 {
		t.Errorf("cursor = %+v, want row 0 col 2", l.Cursor)
	}
}

func TestComputeSingleRow(t *testing.T) {
	l := Compute(plainPrompt("> "), "hello", 5, 80, nil)
	if len(l.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "> hello" {
		t.Errorf("row text = %q", got)
	}
	if l.Rows[0].Start != 0 || l.Rows[0].End != 5 {
		t.Errorf("row range = [%d,%d), want [0,5)", l.Rows[0].Start, l.Rows[0].End)
	}
	if l.Cursor.Row != 0 || l.Cursor.Col != 7 {
		t.Errorf("cursor = %+v, want row 0 col 7", l.Cursor)
	}
}

func TestComputeGreedyWrap(t *testing.T) {
	// Width 10 with a 2-cell prompt leaves 8 cells on the first row.
	l := Compute(plainPrompt("> "), "hello world", 11, 10, nil)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "> hello wo" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(l.Rows[1]); got != "rld" {
		t.Errorf("row 1 = %q", got)
	}
	if l.Rows[0].Start != 0 || l.Rows[0].End != 8 {
		t.Errorf("row 0 range = [%d,%d), want [0,8)", l.Rows[0].Start, l.Rows[0].End)
	}
	if l.Rows[1].Start != 8 || l.Rows[1].End != 11 {
		t.Errorf("row 1 range = [%d,%d), want [8,11)", l.Rows[1].Start, l.Rows[1].End)
	}
	if l.Cursor.Row != 1 || l.Cursor.Col != 3 {
		t.Errorf("cursor = %+v, want row 1 col 3", l.Cursor)
	}
}

func TestComputeCursorAtWrapBoundary(t *testing.T) {
	// Cursor on the first cluster of a continuation row lands at col 0.
	l := Compute(plainPrompt("> "), "hello world", 8, 10, nil)
	if l.Cursor.Row != 1 || l.Cursor.Col != 0 {
		t.Errorf("cursor = %+v, want row 1 col 0", l.Cursor)
	}
}

func TestComputeCursorAtEndOfFullRow(t *testing.T) {
	// Text exactly fills the row; the end-of-text cursor wraps to the
	// next row instead of sitting one past the width.
	l := Compute(plainPrompt("> "), "hello wo", 8, 10, nil)
	if l.Cursor.Row != 1 || l.Cursor.Col != 0 {
		t.Errorf("cursor = %+v, want row 1 col 0", l.Cursor)
	}
}

func TestComputeNewlineHardBreak(t *testing.T) {
	l := Compute(plainPrompt("> "), "ab\ncd", 5, 40, nil)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "> ab" {
		t.Errorf("row 0 = %q", got)
	}
	if !l.Rows[0].HardBreak {
		t.Error("row 0 should be a hard break")
	}
	if got := rowText(l.Rows[1]); got != "cd" {
		t.Errorf("row 1 = %q", got)
	}
	// Newline belongs to the row it terminates.
	if l.Rows[0].Start != 0 || l.Rows[0].End != 3 {
		t.Errorf("row 0 range = [%d,%d), want [0,3)", l.Rows[0].Start, l.Rows[0].End)
	}
	if l.Cursor.Row != 1 || l.Cursor.Col != 2 {
		t.Errorf("cursor = %+v, want row 1 col 2", l.Cursor)
	}
}

func TestComputeTrailingNewline(t *testing.T) {
	l := Compute(plainPrompt("> "), "ab\n", 3, 40, nil)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[1]); got != "" {
		t.Errorf("row 1 = %q, want empty", got)
	}
	if l.Cursor.Row != 1 || l.Cursor.Col != 0 {
		t.Errorf("cursor = %+v, want row 1 col 0", l.Cursor)
	}
}

func TestComputeWideClusterWrap(t *testing.T) {
	// A 2-cell cluster that would straddle the width boundary wraps
	// whole to the next row; no cluster is ever split.
	l := Compute(plainPrompt(""), "aaa漢", 0, 4, nil)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "aaa" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(l.Rows[1]); got != "漢" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestComputeOverwideClusterPlaces(t *testing.T) {
	// A cluster wider than the whole terminal still lands on a row of
	// its own rather than wrapping forever.
	l := Compute(plainPrompt(""), "漢", 0, 1, nil)
	if len(l.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[0]); got != "漢" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestComputeDeterministic(t *testing.T) {
	text := "the quick brown fox\njumps over the lazy dog"
	a := Compute(plainPrompt("$ "), text, 12, 17, nil)
	b := Compute(plainPrompt("$ "), text, 12, 17, nil)
	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		if rowText(a.Rows[i]) != rowText(b.Rows[i]) {
			t.Errorf("row %d differs: %q vs %q", i, rowText(a.Rows[i]), rowText(b.Rows[i]))
		}
	}
	if !a.Cursor.Equals(b.Cursor) {
		t.Errorf("cursors differ: %+v vs %+v", a.Cursor, b.Cursor)
	}
}

func TestComputeStyleSpans(t *testing.T) {
	red := core.NewStyle(core.ColorRed)
	l := Compute(plainPrompt(""), "abcdef", 0, 40, []core.StyleSpan{
		{Start: 2, End: 4, Style: red},
	})
	if len(l.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(l.Rows))
	}
	runs := l.Rows[0].Runs
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "ab" || !runs[0].Style.IsDefault() {
		t.Errorf("run 0 = %+v", runs[0])
	}
	if runs[1].Text != "cd" || !runs[1].Style.Foreground.Equals(core.ColorRed) {
		t.Errorf("run 1 = %+v", runs[1])
	}
	if runs[2].Text != "ef" || !runs[2].Style.IsDefault() {
		t.Errorf("run 2 = %+v", runs[2])
	}
}

func TestComputeLaterSpanWins(t *testing.T) {
	red := core.NewStyle(core.ColorRed)
	blue := core.NewStyle(core.ColorBlue)
	l := Compute(plainPrompt(""), "abc", 0, 40, []core.StyleSpan{
		{Start: 0, End: 3, Style: red},
		{Start: 1, End: 2, Style: blue},
	})
	runs := l.Rows[0].Runs
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if !runs[1].Style.Foreground.Equals(core.ColorBlue) {
		t.Errorf("middle run style = %+v, want blue foreground", runs[1].Style)
	}
}

func TestComputeGraphemeNotSplit(t *testing.T) {
	// Flag emoji is one cluster of two codepoints.
	flag := "\U0001F1FA\U0001F1F8"
	text := strings.Repeat("a", 3) + flag
	l := Compute(plainPrompt(""), text, 0, 4, nil)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if got := rowText(l.Rows[1]); got != flag {
		t.Errorf("row 1 = %q, want the flag cluster intact", got)
	}
}

func TestComputeRightPrompt(t *testing.T) {
	right := core.StyledRun{Text: "12:00", Style: core.DefaultStyle()}
	l := Compute(PromptSpec{
		Left:  core.StyledRun{Text: "> ", Style: core.DefaultStyle()},
		Right: right,
	}, "hi", 2, 20, nil)
	row := l.Rows[0]
	if got := rowText(row); got != "> hi"+strings.Repeat(" ", 11)+"12:00" {
		t.Errorf("row 0 = %q", got)
	}
	if got := row.Width(); got != 20 {
		t.Errorf("row width = %d, want 20", got)
	}
}

func TestComputeRightPromptSkippedWhenTight(t *testing.T) {
	right := core.StyledRun{Text: "12:00", Style: core.DefaultStyle()}
	l := Compute(PromptSpec{
		Left:  core.StyledRun{Text: "> ", Style: core.DefaultStyle()},
		Right: right,
	}, "hello", 5, 12, nil)
	if got := rowText(l.Rows[0]); got != "> hello" {
		t.Errorf("row 0 = %q, right prompt should be dropped", got)
	}
}

func TestComputeCursorClamped(t *testing.T) {
	l := Compute(plainPrompt("> "), "abc", 99, 40, nil)
	if l.Cursor.Row != 0 || l.Cursor.Col != 5 {
		t.Errorf("cursor = %+v, want row 0 col 5", l.Cursor)
	}
	l = Compute(plainPrompt("> "), "abc", -1, 40, nil)
	if l.Cursor.Row != 0 || l.Cursor.Col != 2 {
		t.Errorf("cursor = %+v, want row 0 col 2", l.Cursor)
	}
}

func TestComputePromptRunSeparate(t *testing.T) {
	// Buffer content never merges into the prompt run even with equal
	// styles, so consumers can distinguish prompt cells from content.
	l := Compute(plainPrompt("> "), "ok", 0, 40, nil)
	runs := l.Rows[0].Runs
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "> " || runs[1].Text != "ok" {
		t.Errorf("runs = %+v", runs)
	}
}
