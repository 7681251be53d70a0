package renderer

import (
	"github.com/dshills/linestorm/internal/renderer/layout"
)

// Renderer reconciles layouts against the terminal through a Sink.
// It is not safe for concurrent use; the session loop owns it.
type Renderer struct {
	sink Sink
	last *frame
}

// New creates a renderer writing to the given sink.
func New(sink Sink) *Renderer {
	return &Renderer{sink: sink}
}

// Render diffs the layout against the current screen image and applies
// the resulting ops. Rendering an identical layout twice is a no-op.
func (r *Renderer) Render(l layout.Layout) error {
	next := frameFromLayout(l)
	ops := diff(r.last, next)
	if len(ops) == 0 {
		return nil
	}
	if err := r.sink.Apply(ops); err != nil {
		// Screen state is unknown after a partial write.
		r.last = nil
		return err
	}
	r.last = next
	return nil
}

// Invalidate discards the screen image. The next Render repaints every
// row from scratch. Call after a terminal resize or any external write
// that may have clobbered the edit region.
func (r *Renderer) Invalidate() {
	r.last = nil
}

// RowCount returns the number of rows in the current screen image.
// Sinks use it to scroll room for multi-row edits.
func (r *Renderer) RowCount() int {
	if r.last == nil {
		return 0
	}
	return len(r.last.rows)
}
