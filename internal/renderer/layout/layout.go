package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/linestorm/internal/renderer/core"
)

// PromptSpec is the read-only prompt input for one layout cycle. The
// left prompt prefixes the first row; the right prompt is drawn
// right-aligned on the first row when it fits.
type PromptSpec struct {
	Left  core.StyledRun
	Right core.StyledRun
}

// LeftWidth returns the display width of the left prompt.
func (p PromptSpec) LeftWidth() int {
	return core.StringWidth(p.Left.Text)
}

// Row is one terminal line of wrapped output: the styled runs to paint
// and the grapheme range [Start, End) of buffer content it represents.
// The prompt is part of the runs but not of the range.
type Row struct {
	Runs      []core.StyledRun
	Start     int
	End       int
	HardBreak bool // row ended at a newline grapheme
}

// Width returns the display width of the row's runs.
func (r Row) Width() int {
	w := 0
	for _, run := range r.Runs {
		w += core.StringWidth(run.Text)
	}
	return w
}

// Text returns the row's text without style information.
func (r Row) Text() string {
	var sb strings.Builder
	for _, run := range r.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Layout is the fully materialized result of one layout cycle.
type Layout struct {
	Rows   []Row
	Cursor core.ScreenPos
	Width  int
}

// Compute lays out the buffer text against the terminal width. The
// cursor is a grapheme index and is clamped to the text; spans style
// grapheme ranges, later spans overriding earlier ones.
func Compute(prompt PromptSpec, text string, cursor int, width int, spans []core.StyleSpan) Layout {
	if width < 1 {
		width = 1
	}

	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(clusters) {
		cursor = len(clusters)
	}

	b := newRowBuilder(prompt, width)

	for i, cluster := range clusters {
		gw := core.GraphemeWidth(cluster)

		if cluster != "\n" && b.col+gw > width && b.hasContent() {
			b.wrap(i)
		}

		if i == cursor {
			b.markCursor()
		}

		if cluster == "\n" {
			b.breakHard(i)
			continue
		}

		b.place(cluster, styleAt(spans, i), gw)
	}

	if cursor == len(clusters) {
		// Cursor past the last cluster; wrap it to the next row when the
		// current row is already full.
		if b.col >= width && b.hasContent() {
			b.wrap(len(clusters))
		}
		b.markCursor()
	}

	return b.finish(len(clusters))
}

// styleAt resolves the style for grapheme index i. Later spans win.
func styleAt(spans []core.StyleSpan, i int) core.Style {
	style := core.DefaultStyle()
	for _, span := range spans {
		if i >= span.Start && i < span.End {
			style = style.Merge(span.Style)
		}
	}
	return style
}

// rowBuilder accumulates rows left to right, top to bottom.
type rowBuilder struct {
	prompt core.StyledRun
	right  core.StyledRun
	width  int

	rows     []Row
	runs     []core.StyledRun
	rowStart int
	col      int
	startCol int // column where buffer content starts on this row

	cursor    core.ScreenPos
	cursorSet bool
}

func newRowBuilder(prompt PromptSpec, width int) *rowBuilder {
	b := &rowBuilder{
		prompt: prompt.Left,
		right:  prompt.Right,
		width:  width,
	}
	b.col = core.StringWidth(prompt.Left.Text)
	b.startCol = b.col
	if prompt.Left.Text != "" {
		b.runs = append(b.runs, prompt.Left)
	}
	return b
}

// hasContent returns true once the current row holds buffer content
// beyond the prompt, so a single over-wide cluster still lands
// somewhere instead of wrapping forever.
func (b *rowBuilder) hasContent() bool {
	return b.col > b.startCol || b.startCol > 0
}

func (b *rowBuilder) place(cluster string, style core.Style, gw int) {
	n := len(b.runs)
	if n > 0 && b.runs[n-1].Style.Equals(style) && !isPromptRun(n, b.rows, b.runs, b.prompt) {
		b.runs[n-1].Text += cluster
	} else {
		b.runs = append(b.runs, core.StyledRun{Text: cluster, Style: style})
	}
	b.col += gw
}

// isPromptRun keeps buffer content from merging into the prompt run on
// the first row even when styles match, so the row's grapheme range
// stays separable from the prompt.
func isPromptRun(runCount int, rows []Row, runs []core.StyledRun, prompt core.StyledRun) bool {
	return len(rows) == 0 && runCount == 1 && prompt.Text != "" &&
		runs[0].Text == prompt.Text && runs[0].Style.Equals(prompt.Style)
}

func (b *rowBuilder) markCursor() {
	if b.cursorSet {
		return
	}
	b.cursor = core.ScreenPos{Row: len(b.rows), Col: b.col}
	b.cursorSet = true
}

func (b *rowBuilder) closeRow(end int, hard bool) {
	b.rows = append(b.rows, Row{
		Runs:      b.runs,
		Start:     b.rowStart,
		End:       end,
		HardBreak: hard,
	})
	b.runs = nil
	b.rowStart = end
	b.col = 0
	b.startCol = 0
}

// wrap closes the current row at the width boundary; cluster i starts
// the next row.
func (b *rowBuilder) wrap(i int) {
	b.closeRow(i, false)
}

// breakHard closes the current row at a newline grapheme, which belongs
// to the row it terminates.
func (b *rowBuilder) breakHard(i int) {
	b.closeRow(i+1, true)
}

func (b *rowBuilder) finish(total int) Layout {
	b.closeRow(total, false)
	b.attachRightPrompt()
	return Layout{
		Rows:   b.rows,
		Cursor: b.cursor,
		Width:  b.width,
	}
}

// attachRightPrompt right-aligns the right prompt on the first row when
// at least one cell of padding fits between content and prompt.
func (b *rowBuilder) attachRightPrompt() {
	if b.right.Text == "" || len(b.rows) == 0 {
		return
	}
	row := &b.rows[0]
	rw := core.StringWidth(b.right.Text)
	pad := b.width - row.Width() - rw
	if pad < 1 {
		return
	}
	row.Runs = append(row.Runs,
		core.StyledRun{Text: strings.Repeat(" ", pad), Style: core.DefaultStyle()},
		b.right)
}
