package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/linestorm/internal/renderer/core"
	"github.com/dshills/linestorm/internal/renderer/layout"
)

// cell is one grapheme cluster on screen together with its style and
// display width. Diffing works cell by cell; a cell differs if its
// text or its style changed.
type cell struct {
	text  string
	style core.Style
	width int
}

func (c cell) equals(other cell) bool {
	return c.text == other.text && c.style.Equals(other.style)
}

// frame is the materialized screen image of one layout: every row
// expanded into cells, plus the cursor position.
type frame struct {
	rows   [][]cell
	cursor core.ScreenPos
}

func frameFromLayout(l layout.Layout) *frame {
	f := &frame{cursor: l.Cursor}
	f.rows = make([][]cell, len(l.Rows))
	for i, row := range l.Rows {
		f.rows[i] = expandRuns(row.Runs)
	}
	return f
}

func expandRuns(runs []core.StyledRun) []cell {
	var cells []cell
	for _, run := range runs {
		g := uniseg.NewGraphemes(run.Text)
		for g.Next() {
			s := g.Str()
			cells = append(cells, cell{
				text:  s,
				style: run.Style,
				width: core.GraphemeWidth(s),
			})
		}
	}
	return cells
}

func rowWidth(cells []cell) int {
	w := 0
	for _, c := range cells {
		w += c.width
	}
	return w
}

// diff computes the minimal ops turning the previous frame into the
// next one. A nil previous frame forces a full repaint. The final op
// positions the cursor, emitted only when something was painted or the
// cursor itself moved.
func diff(prev, next *frame) []Op {
	var ops []Op

	prevRows := 0
	if prev != nil {
		prevRows = len(prev.rows)
	}

	for i, row := range next.rows {
		var before []cell
		if prev != nil && i < prevRows {
			before = prev.rows[i]
		}
		ops = append(ops, diffRow(i, before, row, prev == nil)...)
	}

	// Rows the previous frame had that the new one no longer needs.
	for i := len(next.rows); i < prevRows; i++ {
		if len(prev.rows[i]) == 0 {
			continue
		}
		ops = append(ops,
			Op{Kind: OpMoveTo, Pos: core.ScreenPos{Row: i}},
			Op{Kind: OpClearToEnd, Pos: core.ScreenPos{Row: i}},
		)
	}

	cursorMoved := prev == nil || !prev.cursor.Equals(next.cursor)
	if len(ops) > 0 || cursorMoved {
		ops = append(ops, Op{Kind: OpMoveTo, Pos: next.cursor})
	}
	return ops
}

// diffRow reconciles one row. It finds the first differing cell, then
// rewrites the row from there, clearing the tail when the new row
// displays shorter than the old one.
func diffRow(row int, before, after []cell, force bool) []Op {
	start := 0
	col := 0
	if !force {
		for start < len(before) && start < len(after) && before[start].equals(after[start]) {
			col += after[start].width
			start++
		}
		if start == len(before) && start == len(after) {
			return nil
		}
	}

	ops := []Op{{Kind: OpMoveTo, Pos: core.ScreenPos{Row: row, Col: col}}}
	ops = append(ops, writeTail(row, col, after[start:])...)

	afterWidth := col + rowWidth(after[start:])
	beforeWidth := col + rowWidth(before[start:])
	if force || beforeWidth > afterWidth {
		ops = append(ops, Op{Kind: OpClearToEnd, Pos: core.ScreenPos{Row: row, Col: afterWidth}})
	}
	return ops
}

// writeTail groups consecutive same-style cells into write ops.
func writeTail(row, col int, cells []cell) []Op {
	var ops []Op
	i := 0
	for i < len(cells) {
		style := cells[i].style
		text := ""
		width := 0
		for i < len(cells) && cells[i].style.Equals(style) {
			text += cells[i].text
			width += cells[i].width
			i++
		}
		ops = append(ops, Op{
			Kind:  OpWrite,
			Pos:   core.ScreenPos{Row: row, Col: col},
			Text:  text,
			Style: style,
		})
		col += width
	}
	return ops
}
