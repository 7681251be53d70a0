// Package buffer implements the editable line buffer.
//
// The buffer stores text as a sequence of grapheme clusters. Every
// position handed in or out of this package is a grapheme index, never a
// byte or code point offset. The cursor may sit on any cluster or one
// past the last cluster (the end-of-text position). An optional
// selection anchor marks the other end of the active selection.
//
// Mutations clamp rather than fail: deleting past the end trims the
// range, moving past either end pins the cursor. After any operation the
// cursor and anchor are valid indices into the current sequence.
package buffer
