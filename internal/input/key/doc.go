// Package key decodes the raw byte stream from a terminal into key
// events. The parser is incremental: feed it whatever a read returned
// and drain complete events; partial UTF-8 runes and escape sequences
// stay buffered until the rest arrives. Special-key sequences come
// from the terminfo entry for $TERM with a built-in ANSI table as
// fallback, and bracketed paste arrives as a single paste event
// instead of a burst of keystrokes.
package key
