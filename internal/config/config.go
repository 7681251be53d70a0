package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings is everything a session reads at startup.
type Settings struct {
	// EditMode selects the starting keymap mode: "emacs" or "vi".
	EditMode string `toml:"edit_mode"`

	HistoryFile string `toml:"history_file"`
	HistorySize int    `toml:"history_size"`
	MaxUndo     int    `toml:"max_undo"`

	// KeymapFile overlays bindings; .toml and .lua are supported.
	KeymapFile string `toml:"keymap_file"`
	ThemeFile  string `toml:"theme_file"`

	// Keywords feed the default highlighter and completer.
	Keywords []string `toml:"keywords"`

	Hint           bool `toml:"hint"`
	BracketedPaste bool `toml:"bracketed_paste"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		EditMode:       "emacs",
		HistorySize:    1000,
		MaxUndo:        1000,
		Hint:           true,
		BracketedPaste: true,
		LogLevel:       "info",
	}
}

// Load reads settings from a TOML file, layered over the defaults. A
// missing file returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return s, nil
}

// Save writes the settings to a TOML file, creating the parent
// directory if needed.
func (s Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
