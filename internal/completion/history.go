package completion

import (
	"strings"

	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/history"
)

// HistoryCompleter suggests whole past lines whose prefix matches the
// text left of the cursor. Matches come back newest-first without
// duplicates, each spanning the full text before the cursor.
type HistoryCompleter struct {
	hist *history.History
}

// NewHistoryCompleter creates a completer over the given history.
func NewHistoryCompleter(hist *history.History) *HistoryCompleter {
	return &HistoryCompleter{hist: hist}
}

// Complete implements Completer.
func (c *HistoryCompleter) Complete(line string, pos int) []Suggestion {
	clusters := buffer.Split(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(clusters) {
		pos = len(clusters)
	}
	prefix := strings.Join(clusters[:pos], "")
	if prefix == "" {
		return nil
	}

	entries := c.hist.Entries()
	seen := make(map[string]bool)
	var suggestions []Suggestion
	for i := len(entries) - 1; i >= 0; i-- {
		l := entries[i].Line
		if l == prefix || !strings.HasPrefix(l, prefix) || seen[l] {
			continue
		}
		seen[l] = true
		suggestions = append(suggestions, Suggestion{
			Value: l,
			Span:  Span{Start: 0, End: pos},
		})
	}
	return suggestions
}

// Hinter produces the inline hint shown dimmed after the cursor: the
// remainder of the first suggestion for the current line.
type Hinter struct {
	completer Completer
}

// NewHinter creates a hinter backed by any completer, typically a
// HistoryCompleter.
func NewHinter(c Completer) *Hinter {
	return &Hinter{completer: c}
}

// Hint returns the text to display after the cursor, or "" when there
// is nothing to hint. Only meaningful with the cursor at end of line.
func (h *Hinter) Hint(line string, pos int) string {
	if pos != buffer.Count(line) {
		return ""
	}
	suggestions := h.completer.Complete(line, pos)
	if len(suggestions) == 0 {
		return ""
	}
	best := suggestions[0]
	clusters := buffer.Split(best.Value)
	consumed := pos - best.Span.Start
	if consumed < 0 || consumed > len(clusters) {
		return ""
	}
	return strings.Join(clusters[consumed:], "")
}
