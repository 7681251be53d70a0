package session

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/linestorm/internal/completion"
	"github.com/dshills/linestorm/internal/config"
	"github.com/dshills/linestorm/internal/highlight"
	"github.com/dshills/linestorm/internal/history"
	"github.com/dshills/linestorm/internal/input/keymap"
)

// NewFromSettings assembles an editor from loaded configuration:
// history file, keymap overlays, theme, keyword highlighting and
// completion, hints, and file logging. Explicit options run last and
// win over anything the settings chose.
func NewFromSettings(cfg config.Settings, opts ...Option) (*LineEditor, error) {
	var setup []Option

	keys := keymap.NewDefault()
	if cfg.EditMode == "vi" {
		if err := keys.SetMode(keymap.ModeViInsert); err != nil {
			return nil, err
		}
	}
	if cfg.KeymapFile != "" {
		var err error
		switch filepath.Ext(cfg.KeymapFile) {
		case ".lua":
			err = keys.LoadLua(cfg.KeymapFile)
		case ".toml":
			err = keys.LoadTOML(cfg.KeymapFile)
		default:
			err = fmt.Errorf("unsupported keymap file %q", cfg.KeymapFile)
		}
		if err != nil {
			return nil, err
		}
	}
	setup = append(setup, WithKeymap(keys))

	hist := history.New(history.WithMaxEntries(cfg.HistorySize))
	if cfg.HistoryFile != "" {
		if err := hist.Load(cfg.HistoryFile); err != nil {
			return nil, err
		}
		setup = append(setup, WithHistoryFile(cfg.HistoryFile))
	}
	setup = append(setup, WithHistory(hist))

	if len(cfg.Keywords) > 0 {
		setup = append(setup,
			WithHighlighter(highlight.NewKeyword(cfg.Keywords)),
			WithCompleter(completion.NewTrieCompleter(cfg.Keywords)),
		)
	}
	if cfg.Hint {
		setup = append(setup, WithHinter(completion.NewHinter(completion.NewHistoryCompleter(hist))))
	}

	if cfg.ThemeFile != "" {
		theme, err := highlight.LoadTheme(cfg.ThemeFile)
		if err != nil {
			return nil, err
		}
		setup = append(setup, WithTheme(theme))
	}

	if cfg.LogFile != "" {
		log, err := OpenFileLogger(cfg.LogFile, ParseLogLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		setup = append(setup, WithLogger(log))
	}

	setup = append(setup, WithUndoLimit(cfg.MaxUndo))
	setup = append(setup, opts...)
	return New(setup...), nil
}
