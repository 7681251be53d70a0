package history

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries bounds a history that was not given its own limit.
const DefaultMaxEntries = 1000

// Entry is one accepted line.
type Entry struct {
	ID   string
	When time.Time
	Line string
}

type navMode int

const (
	navNormal navMode = iota
	navPrefix
	navSubstring
)

// History stores accepted lines newest-last and serves recall
// navigation over them.
type History struct {
	entries []Entry
	max     int

	navigating bool
	mode       navMode
	query      string
	cur        int
	stash      string
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries caps the number of retained entries. Zero means
// unbounded.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		h.max = n
	}
}

// New creates an empty history retaining DefaultMaxEntries unless
// configured otherwise.
func New(opts ...Option) *History {
	h := &History{max: DefaultMaxEntries}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Add appends an accepted line. Blank lines and consecutive duplicates
// are dropped. Adding resets any navigation in progress.
func (h *History) Add(line string) {
	h.ResetNavigation()
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1].Line == line {
		return
	}
	h.entries = append(h.entries, Entry{
		ID:   uuid.NewString(),
		When: time.Now(),
		Line: line,
	})
	h.trim()
}

func (h *History) trim() {
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the stored entries oldest-first. The slice is shared;
// callers must not mutate it.
func (h *History) Entries() []Entry {
	return h.entries
}

// Lines returns just the line text, oldest-first.
func (h *History) Lines() []string {
	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.Line
	}
	return lines
}

// Clear drops all entries and any navigation state.
func (h *History) Clear() {
	h.entries = nil
	h.ResetNavigation()
}

// StartPrefix switches the next navigation to prefix-search mode.
func (h *History) StartPrefix(prefix string) {
	h.ResetNavigation()
	h.mode = navPrefix
	h.query = prefix
}

// StartSubstring switches the next navigation to substring-search
// mode.
func (h *History) StartSubstring(query string) {
	h.ResetNavigation()
	h.mode = navSubstring
	h.query = query
}

// Navigating reports whether a recall walk is in progress.
func (h *History) Navigating() bool {
	return h.navigating
}

// ResetNavigation ends the recall walk and returns to plain stepping.
func (h *History) ResetNavigation() {
	h.navigating = false
	h.mode = navNormal
	h.query = ""
	h.cur = len(h.entries)
	h.stash = ""
}

// Previous steps to the next older matching entry. On the first step
// it stashes current, the in-progress line, so Next can restore it.
// Returns ok=false when no older entry matches; the walk position is
// unchanged in that case.
func (h *History) Previous(current string) (string, bool) {
	if !h.navigating {
		h.navigating = true
		h.stash = current
		h.cur = len(h.entries)
	}
	for i := h.cur - 1; i >= 0; i-- {
		if h.matches(h.entries[i].Line) {
			h.cur = i
			return h.entries[i].Line, true
		}
	}
	return "", false
}

// Next steps to the next newer matching entry. Stepping past the
// newest entry ends the walk and returns the stashed line.
func (h *History) Next() (string, bool) {
	if !h.navigating {
		return "", false
	}
	for i := h.cur + 1; i < len(h.entries); i++ {
		if h.matches(h.entries[i].Line) {
			h.cur = i
			return h.entries[i].Line, true
		}
	}
	stash := h.stash
	h.ResetNavigation()
	return stash, true
}

func (h *History) matches(line string) bool {
	switch h.mode {
	case navPrefix:
		return strings.HasPrefix(line, h.query)
	case navSubstring:
		return strings.Contains(line, h.query)
	default:
		return true
	}
}
