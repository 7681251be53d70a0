package keymap

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadTOML overlays bindings from a TOML file. Top-level tables name
// the mode; entries map key names to actions:
//
//	[emacs]
//	"ctrl+g" = "edit.clear"
//
//	[vi-normal]
//	"G" = "cursor.end"
func (k *Keymap) LoadTOML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read keymap file: %w", err)
	}
	return k.ParseTOML(data)
}

// ParseTOML overlays bindings from TOML bytes.
func (k *Keymap) ParseTOML(data []byte) error {
	var tables map[string]map[string]string
	if err := toml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("parse keymap: %w", err)
	}
	for mode, table := range tables {
		for keyName, action := range table {
			if err := k.Bind(Mode(mode), keyName, action); err != nil {
				return fmt.Errorf("bind %s %q: %w", mode, keyName, err)
			}
		}
	}
	return nil
}
