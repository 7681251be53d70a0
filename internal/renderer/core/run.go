package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// StyledRun is a run of text rendered in one style.
type StyledRun struct {
	Text  string
	Style Style
}

// Equals returns true if text and style both match. Span identity for
// diffing includes the style: a run differs if either changes.
func (r StyledRun) Equals(other StyledRun) bool {
	return r.Text == other.Text && r.Style.Equals(other.Style)
}

// ScreenPos is a position on screen, 0-indexed, rows growing downward.
type ScreenPos struct {
	Row int
	Col int
}

// Equals returns true if two positions are the same.
func (p ScreenPos) Equals(other ScreenPos) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// StyleSpan attaches a style to a grapheme range [Start, End) of the
// buffer text. Produced by highlighters and the selection overlay.
type StyleSpan struct {
	Start int
	End   int
	Style Style
}

// RuneWidth returns the display width in terminal cells of a single
// rune, per East-Asian width rules.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// GraphemeWidth returns the display width of one grapheme cluster.
// Newlines occupy no cells; they only break rows.
func GraphemeWidth(g string) int {
	if g == "" || g == "\n" {
		return 0
	}
	return uniseg.StringWidth(g)
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
