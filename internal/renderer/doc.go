// Package renderer turns successive layouts into minimal terminal
// operations. It keeps an image of what is currently on screen, diffs
// each new layout against it row by row, and emits only the moves,
// clears and writes needed to reconcile the two. Rendering the same
// layout twice emits nothing; Invalidate discards the image so the
// next render repaints everything, which is how resize recovery works.
package renderer
