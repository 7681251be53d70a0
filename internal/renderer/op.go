package renderer

import (
	"fmt"

	"github.com/dshills/linestorm/internal/renderer/core"
)

// OpKind identifies a terminal operation.
type OpKind int

// Terminal operation kinds.
const (
	// OpMoveTo positions the cursor at Pos.
	OpMoveTo OpKind = iota
	// OpClearToEnd erases from Pos to the end of the row.
	OpClearToEnd
	// OpWrite paints Text in Style starting at Pos.
	OpWrite
)

// String returns the kind name.
func (k OpKind) String() string {
	switch k {
	case OpMoveTo:
		return "move"
	case OpClearToEnd:
		return "clear"
	case OpWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Op is one terminal operation. Positions are relative to the first
// row of the edit region, not the terminal origin; the sink translates.
type Op struct {
	Kind  OpKind
	Pos   core.ScreenPos
	Text  string
	Style core.Style
}

// String returns a compact description, mainly for test failures.
func (o Op) String() string {
	switch o.Kind {
	case OpWrite:
		return fmt.Sprintf("write(%d,%d,%q)", o.Pos.Row, o.Pos.Col, o.Text)
	default:
		return fmt.Sprintf("%s(%d,%d)", o.Kind, o.Pos.Row, o.Pos.Col)
	}
}

// Sink consumes terminal operations. Implementations translate ops
// into escape sequences or record them for inspection.
type Sink interface {
	Apply(ops []Op) error
}

// NullSink records every op batch it receives without touching a
// terminal. Used in tests to assert on emitted operations.
type NullSink struct {
	Batches [][]Op
}

// Apply records the batch.
func (s *NullSink) Apply(ops []Op) error {
	s.Batches = append(s.Batches, ops)
	return nil
}

// Ops returns all recorded ops flattened in order.
func (s *NullSink) Ops() []Op {
	var all []Op
	for _, batch := range s.Batches {
		all = append(all, batch...)
	}
	return all
}

// Reset drops recorded batches.
func (s *NullSink) Reset() {
	s.Batches = nil
}
