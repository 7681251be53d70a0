package key

import (
	"fmt"
	"strings"
)

// Key identifies a non-printing key. Printable input arrives as
// KeyRune with the rune set.
type Key int

// Key codes.
const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	// KeyPaste carries a bracketed paste payload in Event.Text.
	KeyPaste
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdn",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyPaste:     "paste",
}

// ModMask is a bit set of held modifiers.
type ModMask int

// Modifier bits.
const (
	ModCtrl ModMask = 1 << iota
	ModAlt
	ModShift
)

// Event is one decoded keystroke or paste.
type Event struct {
	Key  Key
	Rune rune    // set when Key == KeyRune
	Mod  ModMask
	Text string // set when Key == KeyPaste
}

// Name returns the canonical binding name for the event, e.g. "a",
// "ctrl+a", "alt+enter", "shift+tab", "up". Keymaps bind by this name.
func (e Event) Name() string {
	var sb strings.Builder
	if e.Mod&ModCtrl != 0 {
		sb.WriteString("ctrl+")
	}
	if e.Mod&ModAlt != 0 {
		sb.WriteString("alt+")
	}
	if e.Mod&ModShift != 0 {
		sb.WriteString("shift+")
	}
	if e.Key == KeyRune {
		sb.WriteRune(e.Rune)
	} else if name, ok := keyNames[e.Key]; ok {
		sb.WriteString(name)
	} else {
		sb.WriteString(fmt.Sprintf("key(%d)", int(e.Key)))
	}
	return sb.String()
}

// IsRune reports whether the event is unmodified printable input.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Mod == 0
}
