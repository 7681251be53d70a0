package term

import (
	"fmt"

	"golang.org/x/term"
)

// State holds the terminal settings to restore on exit.
type State struct {
	fd   int
	prev *term.State
}

// MakeRaw switches the terminal on fd into raw mode and returns the
// state needed to undo it.
func MakeRaw(fd int) (*State, error) {
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &State{fd: fd, prev: prev}, nil
}

// Restore puts the terminal back into its pre-raw settings. Safe to
// call more than once.
func (s *State) Restore() error {
	if s == nil || s.prev == nil {
		return nil
	}
	prev := s.prev
	s.prev = nil
	if err := term.Restore(s.fd, prev); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Size returns the terminal dimensions in cells.
func Size(fd int) (width, height int, err error) {
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return width, height, nil
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
