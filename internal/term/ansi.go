package term

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/linestorm/internal/renderer"
	"github.com/dshills/linestorm/internal/renderer/core"
)

// AnsiSink translates renderer ops into ANSI escape sequences. Op
// positions are relative to the top of the edit region; the sink
// tracks where the hardware cursor sits inside that region and emits
// relative movement only. Row 0 column 0 must be the hardware cursor
// position at the time of the first Apply.
type AnsiSink struct {
	w io.Writer

	row    int
	col    int
	maxRow int // deepest region row the cursor has visited
}

// NewAnsiSink creates a sink writing escape sequences to w, normally
// the raw-mode tty.
func NewAnsiSink(w io.Writer) *AnsiSink {
	return &AnsiSink{w: w}
}

// Apply writes the op batch as one buffered terminal write.
func (s *AnsiSink) Apply(ops []renderer.Op) error {
	var buf bytes.Buffer
	for _, op := range ops {
		switch op.Kind {
		case renderer.OpMoveTo:
			s.moveTo(&buf, op.Pos)
		case renderer.OpClearToEnd:
			s.moveTo(&buf, op.Pos)
			buf.WriteString("\x1b[K")
		case renderer.OpWrite:
			s.moveTo(&buf, op.Pos)
			writeSGR(&buf, op.Style)
			buf.WriteString(op.Text)
			if !op.Style.IsDefault() {
				buf.WriteString("\x1b[0m")
			}
			s.col += core.StringWidth(op.Text)
		}
	}
	if buf.Len() == 0 {
		return nil
	}
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// Finish moves the cursor below the edit region and resets the sink
// for the next line. Called when a line is accepted or abandoned.
func (s *AnsiSink) Finish() error {
	var buf bytes.Buffer
	if s.maxRow > s.row {
		buf.WriteString("\x1b[" + strconv.Itoa(s.maxRow-s.row) + "B")
	}
	buf.WriteString("\r\n")
	s.row = 0
	s.col = 0
	s.maxRow = 0
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// Print writes program output on its own row. Only valid between
// lines, when the cursor sits at the start of a fresh row.
func (s *AnsiSink) Print(text string) error {
	s.Reset()
	if _, err := s.w.Write([]byte(text + "\r\n")); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// Clear wipes the whole screen, homes the cursor, and resets tracking
// so the next render starts at the top left.
func (s *AnsiSink) Clear() error {
	s.Reset()
	if _, err := s.w.Write([]byte("\x1b[H\x1b[2J")); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// Reset forgets cursor tracking without emitting anything. Used after
// a repaint is forced from an unknown screen state.
func (s *AnsiSink) Reset() {
	s.row = 0
	s.col = 0
	s.maxRow = 0
}

// moveTo emits relative cursor movement from the tracked position to
// pos. Moving below the deepest visited row emits newlines so the
// terminal scrolls instead of the cursor falling off the screen.
func (s *AnsiSink) moveTo(buf *bytes.Buffer, pos core.ScreenPos) {
	for pos.Row > s.maxRow {
		if s.row < s.maxRow {
			buf.WriteString("\x1b[" + strconv.Itoa(s.maxRow-s.row) + "B")
			s.row = s.maxRow
		}
		buf.WriteString("\r\n")
		s.row++
		s.col = 0
		s.maxRow = s.row
	}
	if pos.Row > s.row {
		buf.WriteString("\x1b[" + strconv.Itoa(pos.Row-s.row) + "B")
		s.row = pos.Row
	} else if pos.Row < s.row {
		buf.WriteString("\x1b[" + strconv.Itoa(s.row-pos.Row) + "A")
		s.row = pos.Row
	}
	if pos.Col != s.col {
		if pos.Col == 0 {
			buf.WriteString("\r")
		} else {
			buf.WriteString("\x1b[" + strconv.Itoa(pos.Col+1) + "G")
		}
		s.col = pos.Col
	}
}

// writeSGR emits the SGR sequence selecting the style. Default style
// emits nothing.
func writeSGR(buf *bytes.Buffer, style core.Style) {
	if style.IsDefault() {
		return
	}
	buf.WriteString("\x1b[0")
	if style.Attributes.Has(core.AttrBold) {
		buf.WriteString(";1")
	}
	if style.Attributes.Has(core.AttrDim) {
		buf.WriteString(";2")
	}
	if style.Attributes.Has(core.AttrItalic) {
		buf.WriteString(";3")
	}
	if style.Attributes.Has(core.AttrUnderline) {
		buf.WriteString(";4")
	}
	if style.Attributes.Has(core.AttrReverse) {
		buf.WriteString(";7")
	}
	if style.Attributes.Has(core.AttrStrikethrough) {
		buf.WriteString(";9")
	}
	writeColor(buf, style.Foreground, 30, 38)
	writeColor(buf, style.Background, 40, 48)
	buf.WriteString("m")
}

// writeColor appends one color parameter. base is the classic 8-color
// base code, ext the 256/truecolor selector.
func writeColor(buf *bytes.Buffer, c core.Color, base, ext int) {
	switch {
	case c.IsDefault():
	case c.Indexed && c.R < 8:
		buf.WriteString(";" + strconv.Itoa(base+int(c.R)))
	case c.Indexed:
		fmt.Fprintf(buf, ";%d;5;%d", ext, c.R)
	default:
		fmt.Fprintf(buf, ";%d;2;%d;%d;%d", ext, c.R, c.G, c.B)
	}
}
