package key

import (
	"strings"
	"unicode/utf8"
)

const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

// Parser turns raw terminal bytes into events. Feed bytes as they
// arrive, then drain Next until it reports no complete event. A lone
// ESC is ambiguous with the start of a sequence; Flush resolves it
// when the caller knows no more bytes are coming.
type Parser struct {
	buf  []byte
	seqs []sequence
}

// NewParser creates a parser with the sequence table for termName
// (typically os.Getenv("TERM")).
func NewParser(termName string) *Parser {
	return &Parser{seqs: sequencesFor(termName)}
}

// Feed appends raw bytes to the parse buffer.
func (p *Parser) Feed(data []byte) {
	p.buf = append(p.buf, data...)
}

// Pending reports whether undecoded bytes remain buffered.
func (p *Parser) Pending() bool {
	return len(p.buf) > 0
}

// Next returns the next complete event. ok is false when the buffer
// is empty or holds only a prefix of an incomplete sequence.
func (p *Parser) Next() (Event, bool) {
	return p.next(false)
}

// Flush returns the next event treating the buffer as final: a lone
// ESC becomes an escape key event and a dangling sequence prefix is
// decoded byte-wise instead of waiting for more input.
func (p *Parser) Flush() (Event, bool) {
	return p.next(true)
}

func (p *Parser) next(flush bool) (Event, bool) {
	if len(p.buf) == 0 {
		return Event{}, false
	}

	b := p.buf[0]
	if b == 0x1b {
		return p.nextEscape(flush)
	}

	// Control bytes map to ctrl+letter; a few have dedicated keys.
	if b < 0x20 || b == 0x7f {
		p.buf = p.buf[1:]
		return controlEvent(b), true
	}

	r, size := utf8.DecodeRune(p.buf)
	if r == utf8.RuneError && size == 1 {
		if !utf8.FullRune(p.buf) && !flush {
			// Partial rune; wait for the rest.
			return Event{}, false
		}
		// Invalid byte; drop it.
		p.buf = p.buf[1:]
		return p.next(flush)
	}
	p.buf = p.buf[size:]
	return Event{Key: KeyRune, Rune: r}, true
}

func (p *Parser) nextEscape(flush bool) (Event, bool) {
	if strings.HasPrefix(string(p.buf), pasteStart) {
		return p.nextPaste(flush)
	}
	if len(pasteStart) > len(p.buf) && strings.HasPrefix(pasteStart, string(p.buf)) && !flush {
		return Event{}, false
	}

	prefix := false
	for _, s := range p.seqs {
		if len(p.buf) >= len(s.bytes) {
			if string(p.buf[:len(s.bytes)]) == s.bytes {
				p.buf = p.buf[len(s.bytes):]
				return s.event, true
			}
		} else if strings.HasPrefix(s.bytes, string(p.buf)) {
			prefix = true
		}
	}
	if prefix && !flush {
		return Event{}, false
	}

	if len(p.buf) == 1 {
		if !flush {
			return Event{}, false
		}
		p.buf = nil
		return Event{Key: KeyEsc}, true
	}

	// ESC followed by a printable byte is alt+key.
	rest := p.buf[1:]
	r, size := utf8.DecodeRune(rest)
	if r == utf8.RuneError && size == 1 && !utf8.FullRune(rest) && !flush {
		return Event{}, false
	}
	if r != utf8.RuneError && r >= 0x20 && r != 0x7f {
		p.buf = p.buf[1+size:]
		return Event{Key: KeyRune, Rune: r, Mod: ModAlt}, true
	}
	if rest[0] < 0x20 || rest[0] == 0x7f {
		ev := controlEvent(rest[0])
		ev.Mod |= ModAlt
		p.buf = p.buf[2:]
		return ev, true
	}

	// Unrecognized escape; emit ESC and reparse the rest.
	p.buf = p.buf[1:]
	return Event{Key: KeyEsc}, true
}

func (p *Parser) nextPaste(flush bool) (Event, bool) {
	end := strings.Index(string(p.buf), pasteEnd)
	if end < 0 {
		if !flush {
			return Event{}, false
		}
		text := string(p.buf[len(pasteStart):])
		p.buf = nil
		return Event{Key: KeyPaste, Text: text}, true
	}
	text := string(p.buf[len(pasteStart):end])
	p.buf = p.buf[end+len(pasteEnd):]
	return Event{Key: KeyPaste, Text: text}, true
}

func controlEvent(b byte) Event {
	switch b {
	case 0x0d, 0x0a:
		return Event{Key: KeyEnter}
	case 0x09:
		return Event{Key: KeyTab}
	case 0x7f, 0x08:
		return Event{Key: KeyBackspace}
	case 0x00:
		return Event{Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	}
	if b < 0x1b {
		return Event{Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}
	}
	// 0x1c-0x1f: ctrl+\ ctrl+] ctrl+^ ctrl+_
	return Event{Key: KeyRune, Rune: rune('\\' + b - 0x1c), Mod: ModCtrl}
}
