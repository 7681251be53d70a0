// Package history keeps the lines a session has accepted and serves
// them back during recall. Navigation runs in one of three modes:
// plain stepping, prefix search seeded by the text left of the cursor,
// and substring search. The in-progress line is stashed when recall
// starts and restored when the user steps past the newest entry.
// Entries persist as JSON lines so a crash loses at most one line.
package history
