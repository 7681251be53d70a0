package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/linestorm/internal/engine"
)

// Mode selects which binding table is active.
type Mode string

// Editing modes.
const (
	ModeEmacs    Mode = "emacs"
	ModeViInsert Mode = "vi-insert"
	ModeViNormal Mode = "vi-normal"
)

// Errors returned by binding operations.
var (
	ErrUnknownMode   = errors.New("unknown keymap mode")
	ErrUnknownAction = errors.New("unknown action")
)

// sessionActions are the action names owned by the session loop rather
// than the edit engine.
var sessionActions = map[string]bool{
	"accept":            true,
	"interrupt":         true,
	"eof":               true,
	"delete-or-eof":     true,
	"clear-screen":      true,
	"history.previous":  true,
	"history.next":      true,
	"history.search":    true,
	"complete":          true,
	"complete.next":     true,
	"complete.previous": true,
	"hint.accept":       true,
	"mode.emacs":        true,
	"mode.vi-insert":    true,
	"mode.vi-normal":    true,
	"none":              true,
}

// KnownAction reports whether name is a valid binding target: an
// engine command or a session action.
func KnownAction(name string) bool {
	return engine.KnownCommand(name) || sessionActions[name]
}

// Keymap resolves key names to actions for the active mode.
type Keymap struct {
	mode  Mode
	binds map[Mode]map[string]string
}

// NewDefault builds a keymap with the built-in emacs and vi tables,
// starting in emacs mode.
func NewDefault() *Keymap {
	k := &Keymap{
		mode: ModeEmacs,
		binds: map[Mode]map[string]string{
			ModeEmacs:    {},
			ModeViInsert: {},
			ModeViNormal: {},
		},
	}
	for name, action := range emacsDefaults {
		k.binds[ModeEmacs][name] = action
	}
	for name, action := range viInsertDefaults {
		k.binds[ModeViInsert][name] = action
	}
	for name, action := range viNormalDefaults {
		k.binds[ModeViNormal][name] = action
	}
	return k
}

// Mode returns the active mode.
func (k *Keymap) Mode() Mode {
	return k.mode
}

// SetMode switches the active mode.
func (k *Keymap) SetMode(m Mode) error {
	if _, ok := k.binds[m]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	k.mode = m
	return nil
}

// Lookup resolves a key event name in the active mode.
func (k *Keymap) Lookup(keyName string) (action string, ok bool) {
	action, ok = k.binds[k.mode][keyName]
	return action, ok
}

// Bind sets a binding in the given mode. Binding to "none" removes the
// key from the table.
func (k *Keymap) Bind(mode Mode, keyName, action string) error {
	table, ok := k.binds[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if !KnownAction(action) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if action == "none" {
		delete(table, keyName)
		return nil
	}
	table[keyName] = action
	return nil
}

var emacsDefaults = map[string]string{
	"enter":         "accept",
	"alt+enter":     "edit.insert-newline",
	"ctrl+j":        "edit.insert-newline",
	"tab":           "complete",
	"shift+tab":     "complete.previous",
	"backspace":     "edit.backspace",
	"alt+backspace": "edit.backspace-word",
	"delete":        "edit.delete",
	"left":          "cursor.left",
	"right":         "cursor.right",
	"up":            "history.previous",
	"down":          "history.next",
	"home":          "cursor.line-start",
	"end":           "cursor.line-end",
	"ctrl+a":        "cursor.line-start",
	"ctrl+e":        "cursor.line-end",
	"ctrl+b":        "cursor.left",
	"ctrl+f":        "cursor.right",
	"alt+b":         "cursor.word-left",
	"alt+f":         "cursor.word-right",
	"ctrl+left":     "cursor.word-left",
	"ctrl+right":    "cursor.word-right",
	"ctrl+p":        "history.previous",
	"ctrl+n":        "history.next",
	"ctrl+r":        "history.search",
	"ctrl+d":        "delete-or-eof",
	"ctrl+c":        "interrupt",
	"ctrl+l":        "clear-screen",
	"ctrl+w":        "cut.word-left",
	"alt+d":         "cut.word-right",
	"ctrl+k":        "cut.to-end",
	"ctrl+u":        "cut.from-start",
	"ctrl+y":        "paste.before",
	"ctrl+t":        "swap.graphemes",
	"alt+t":         "swap.words",
	"alt+u":         "case.upper-word",
	"alt+l":         "case.lower-word",
	"alt+c":         "case.capitalize",
	"ctrl+_":        "undo",
	"ctrl+z":        "undo",
	"alt+z":         "redo",
}

var viInsertDefaults = map[string]string{
	"esc":       "mode.vi-normal",
	"enter":     "accept",
	"tab":       "complete",
	"shift+tab": "complete.previous",
	"backspace": "edit.backspace",
	"delete":    "edit.delete",
	"left":      "cursor.left",
	"right":     "cursor.right",
	"up":        "history.previous",
	"down":      "history.next",
	"home":      "cursor.line-start",
	"end":       "cursor.line-end",
	"ctrl+d":    "delete-or-eof",
	"ctrl+c":    "interrupt",
	"ctrl+l":    "clear-screen",
	"ctrl+r":    "history.search",
	"ctrl+w":    "cut.word-left",
}

var viNormalDefaults = map[string]string{
	"i":      "mode.vi-insert",
	"enter":  "accept",
	"h":      "cursor.left",
	"l":      "cursor.right",
	"k":      "history.previous",
	"j":      "history.next",
	"0":      "cursor.line-start",
	"$":      "cursor.line-end",
	"w":      "cursor.word-right",
	"b":      "cursor.word-left",
	"x":      "edit.delete",
	"D":      "cut.to-line-end",
	"p":      "paste.after",
	"P":      "paste.before",
	"u":      "undo",
	"ctrl+r": "redo",
	"~":      "case.capitalize",
	"left":   "cursor.left",
	"right":  "cursor.right",
	"up":     "history.previous",
	"down":   "history.next",
	"ctrl+c": "interrupt",
	"ctrl+d": "delete-or-eof",
}
