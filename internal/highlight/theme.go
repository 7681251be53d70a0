package highlight

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/linestorm/internal/renderer/core"
)

// Theme is a named set of styles loaded from YAML. Entry names are
// free-form; the session looks up "keyword", "default", "hint" and
// "selection".
type Theme struct {
	styles map[string]core.Style
}

// themeEntry is the YAML shape of one style.
type themeEntry struct {
	FG        string `yaml:"fg"`
	BG        string `yaml:"bg"`
	Bold      bool   `yaml:"bold"`
	Dim       bool   `yaml:"dim"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
	Reverse   bool   `yaml:"reverse"`
}

// LoadTheme reads a theme from a YAML file:
//
//	keyword:
//	  fg: green
//	  bold: true
//	hint:
//	  dim: true
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme parses theme YAML.
func ParseTheme(data []byte) (*Theme, error) {
	var entries map[string]themeEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	t := &Theme{styles: make(map[string]core.Style, len(entries))}
	for name, e := range entries {
		style, err := e.toStyle()
		if err != nil {
			return nil, fmt.Errorf("theme entry %q: %w", name, err)
		}
		t.styles[name] = style
	}
	return t, nil
}

// Style returns the style for a theme entry.
func (t *Theme) Style(name string) (core.Style, bool) {
	s, ok := t.styles[name]
	return s, ok
}

// StyleOr returns the entry's style or the fallback when absent.
func (t *Theme) StyleOr(name string, fallback core.Style) core.Style {
	if t == nil {
		return fallback
	}
	if s, ok := t.styles[name]; ok {
		return s
	}
	return fallback
}

func (e themeEntry) toStyle() (core.Style, error) {
	style := core.DefaultStyle()
	if e.FG != "" {
		c, err := parseColor(e.FG)
		if err != nil {
			return style, err
		}
		style.Foreground = c
	}
	if e.BG != "" {
		c, err := parseColor(e.BG)
		if err != nil {
			return style, err
		}
		style.Background = c
	}
	if e.Bold {
		style = style.Bold()
	}
	if e.Dim {
		style = style.Dim()
	}
	if e.Italic {
		style = style.Italic()
	}
	if e.Underline {
		style = style.Underline()
	}
	if e.Reverse {
		style = style.Reverse()
	}
	return style, nil
}

var namedColors = map[string]core.Color{
	"black":   core.ColorBlack,
	"red":     core.ColorRed,
	"green":   core.ColorGreen,
	"yellow":  core.ColorYellow,
	"blue":    core.ColorBlue,
	"magenta": core.ColorMagenta,
	"cyan":    core.ColorCyan,
	"white":   core.ColorWhite,
	"gray":    core.ColorGray,
	"default": core.ColorDefault,
}

// parseColor accepts a color name, a palette index, or "#RRGGBB".
func parseColor(s string) (core.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return core.Color{}, fmt.Errorf("bad hex color %q", s)
		}
		return core.ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return core.ColorFromIndex(uint8(n)), nil
	}
	return core.Color{}, fmt.Errorf("unknown color %q", s)
}
