// Package layout computes how a logical buffer wraps into terminal
// rows.
//
// Compute is a pure function of (prompt, text, cursor, width, styles):
// identical inputs always produce identical rows, which the renderer
// relies on for stable diffs. Rows fill greedily by display width with
// a hard break exactly at the width boundary; newline graphemes force a
// break regardless of remaining room. The first row's budget is reduced
// by the prompt's display width; continuation rows are unprefixed.
package layout
