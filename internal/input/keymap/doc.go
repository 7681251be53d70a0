// Package keymap maps key event names to action names per editing
// mode. Actions are either engine edit commands ("cursor.left",
// "edit.backspace") or session-level actions ("accept",
// "history.previous"); the keymap itself only resolves names. Bindings
// can be overridden from a TOML file or a Lua script on top of the
// built-in emacs and vi defaults.
package keymap
