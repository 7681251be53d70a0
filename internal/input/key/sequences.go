package key

import (
	"sort"

	"github.com/gdamore/tcell/v2/terminfo"

	// Compiled-in terminfo entries for common terminals.
	_ "github.com/gdamore/tcell/v2/terminfo/base"
)

// sequence pairs an escape sequence with the event it decodes to.
type sequence struct {
	bytes string
	event Event
}

// defaultSequences is the ANSI/xterm table used when terminfo has no
// entry for a key or no entry for the terminal at all.
var defaultSequences = []sequence{
	{"\x1b[A", Event{Key: KeyUp}},
	{"\x1b[B", Event{Key: KeyDown}},
	{"\x1b[C", Event{Key: KeyRight}},
	{"\x1b[D", Event{Key: KeyLeft}},
	{"\x1b[H", Event{Key: KeyHome}},
	{"\x1b[F", Event{Key: KeyEnd}},
	{"\x1bOA", Event{Key: KeyUp}},
	{"\x1bOB", Event{Key: KeyDown}},
	{"\x1bOC", Event{Key: KeyRight}},
	{"\x1bOD", Event{Key: KeyLeft}},
	{"\x1bOH", Event{Key: KeyHome}},
	{"\x1bOF", Event{Key: KeyEnd}},
	{"\x1b[1~", Event{Key: KeyHome}},
	{"\x1b[2~", Event{Key: KeyInsert}},
	{"\x1b[3~", Event{Key: KeyDelete}},
	{"\x1b[4~", Event{Key: KeyEnd}},
	{"\x1b[5~", Event{Key: KeyPgUp}},
	{"\x1b[6~", Event{Key: KeyPgDn}},
	{"\x1b[Z", Event{Key: KeyTab, Mod: ModShift}},
	{"\x1bOP", Event{Key: KeyF1}},
	{"\x1bOQ", Event{Key: KeyF2}},
	{"\x1bOR", Event{Key: KeyF3}},
	{"\x1bOS", Event{Key: KeyF4}},
	{"\x1b[15~", Event{Key: KeyF5}},
	{"\x1b[17~", Event{Key: KeyF6}},
	{"\x1b[18~", Event{Key: KeyF7}},
	{"\x1b[19~", Event{Key: KeyF8}},
	{"\x1b[20~", Event{Key: KeyF9}},
	{"\x1b[21~", Event{Key: KeyF10}},
	{"\x1b[23~", Event{Key: KeyF11}},
	{"\x1b[24~", Event{Key: KeyF12}},
	// xterm modified arrows.
	{"\x1b[1;5C", Event{Key: KeyRight, Mod: ModCtrl}},
	{"\x1b[1;5D", Event{Key: KeyLeft, Mod: ModCtrl}},
	{"\x1b[1;5A", Event{Key: KeyUp, Mod: ModCtrl}},
	{"\x1b[1;5B", Event{Key: KeyDown, Mod: ModCtrl}},
	{"\x1b[1;3C", Event{Key: KeyRight, Mod: ModAlt}},
	{"\x1b[1;3D", Event{Key: KeyLeft, Mod: ModAlt}},
	{"\x1b[1;2C", Event{Key: KeyRight, Mod: ModShift}},
	{"\x1b[1;2D", Event{Key: KeyLeft, Mod: ModShift}},
}

// sequencesFor builds the lookup table for a terminal, longest
// sequences first so the parser always matches greedily. Terminfo
// entries override the defaults for the keys they define.
func sequencesFor(termName string) []sequence {
	byBytes := make(map[string]Event, len(defaultSequences))
	for _, s := range defaultSequences {
		byBytes[s.bytes] = s.event
	}

	if ti, err := terminfo.LookupTerminfo(termName); err == nil {
		add := func(seq string, ev Event) {
			if seq != "" {
				byBytes[seq] = ev
			}
		}
		add(ti.KeyUp, Event{Key: KeyUp})
		add(ti.KeyDown, Event{Key: KeyDown})
		add(ti.KeyLeft, Event{Key: KeyLeft})
		add(ti.KeyRight, Event{Key: KeyRight})
		add(ti.KeyHome, Event{Key: KeyHome})
		add(ti.KeyEnd, Event{Key: KeyEnd})
		add(ti.KeyPgUp, Event{Key: KeyPgUp})
		add(ti.KeyPgDn, Event{Key: KeyPgDn})
		add(ti.KeyInsert, Event{Key: KeyInsert})
		add(ti.KeyDelete, Event{Key: KeyDelete})
		add(ti.KeyF1, Event{Key: KeyF1})
		add(ti.KeyF2, Event{Key: KeyF2})
		add(ti.KeyF3, Event{Key: KeyF3})
		add(ti.KeyF4, Event{Key: KeyF4})
		add(ti.KeyF5, Event{Key: KeyF5})
		add(ti.KeyF6, Event{Key: KeyF6})
		add(ti.KeyF7, Event{Key: KeyF7})
		add(ti.KeyF8, Event{Key: KeyF8})
		add(ti.KeyF9, Event{Key: KeyF9})
		add(ti.KeyF10, Event{Key: KeyF10})
		add(ti.KeyF11, Event{Key: KeyF11})
		add(ti.KeyF12, Event{Key: KeyF12})
		add(ti.KeyShfLeft, Event{Key: KeyLeft, Mod: ModShift})
		add(ti.KeyShfRight, Event{Key: KeyRight, Mod: ModShift})
		add(ti.KeyCtrlLeft, Event{Key: KeyLeft, Mod: ModCtrl})
		add(ti.KeyCtrlRight, Event{Key: KeyRight, Mod: ModCtrl})
		add(ti.KeyAltLeft, Event{Key: KeyLeft, Mod: ModAlt})
		add(ti.KeyAltRight, Event{Key: KeyRight, Mod: ModAlt})
	}

	seqs := make([]sequence, 0, len(byBytes))
	for b, ev := range byBytes {
		seqs = append(seqs, sequence{bytes: b, event: ev})
	}
	sort.Slice(seqs, func(i, j int) bool {
		if len(seqs[i].bytes) != len(seqs[j].bytes) {
			return len(seqs[i].bytes) > len(seqs[j].bytes)
		}
		return seqs[i].bytes < seqs[j].bytes
	})
	return seqs
}
