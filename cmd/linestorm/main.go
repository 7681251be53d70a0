// Package main is a demo shell built on the linestorm editor: it
// reads lines with history, completion and highlighting, and echoes
// them back.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/linestorm/internal/config"
	"github.com/dshills/linestorm/internal/input/keymap"
	"github.com/dshills/linestorm/internal/session"
	"github.com/dshills/linestorm/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("linestorm %s (%s)\n", version, commit)
		return 0
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	width, _, err := term.Size(fd)
	if err != nil {
		width = 80
	}

	editor, err := session.NewFromSettings(cfg,
		session.WithWidth(width),
		session.WithValidator(session.BracketValidator{}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer state.Restore()

	// Track terminal resizes so the editor can rewrap.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			if w, _, err := term.Size(fd); err == nil {
				editor.Resize(w)
			}
		}
	}()
	defer signal.Stop(winch)

	// Hot-reload the edit mode when the config file changes.
	if configPath != "" {
		w, err := config.Watch(configPath, func(s config.Settings) {
			mode := keymap.ModeEmacs
			if s.EditMode == "vi" {
				mode = keymap.ModeViInsert
			}
			_ = editor.Keymap().SetMode(mode)
		})
		if err == nil {
			defer w.Close()
		}
	}

	for {
		line, sig, err := editor.ReadLine("linestorm> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\r\n", err)
			return 1
		}
		switch sig {
		case session.SignalEndOfFile:
			return 0
		case session.SignalInterrupt:
			continue
		case session.SignalLine:
			if line == "exit" || line == "quit" {
				return 0
			}
			editor.PrintLine(line)
		}
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.config/linestorm/config.toml"
}
