package session

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/linestorm/internal/completion"
	"github.com/dshills/linestorm/internal/engine"
	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/highlight"
	"github.com/dshills/linestorm/internal/history"
	"github.com/dshills/linestorm/internal/input/key"
	"github.com/dshills/linestorm/internal/input/keymap"
	"github.com/dshills/linestorm/internal/renderer"
	"github.com/dshills/linestorm/internal/renderer/core"
	"github.com/dshills/linestorm/internal/renderer/layout"
	"github.com/dshills/linestorm/internal/term"
)

// Signal says how a ReadLine call ended.
type Signal int

// ReadLine outcomes.
const (
	// SignalLine means the user accepted the returned line.
	SignalLine Signal = iota
	// SignalInterrupt means the user pressed the interrupt key.
	SignalInterrupt
	// SignalEndOfFile means end-of-input on an empty buffer.
	SignalEndOfFile
)

// escTimeout is how long a pending escape byte waits for the rest of
// its sequence before it is taken as a plain ESC keypress.
const escTimeout = 50 * time.Millisecond

// finisher is the optional sink hook run when a line ends.
type finisher interface {
	Finish() error
}

// clearer is the optional sink hook behind the clear-screen action.
type clearer interface {
	Clear() error
}

// printer is the optional sink hook behind PrintLine.
type printer interface {
	Print(text string) error
}

// LineEditor is the interactive facade. One instance serves many
// ReadLine calls, carrying history and keymap state across them.
type LineEditor struct {
	eng         *engine.Engine
	keys        *keymap.Keymap
	hist        *history.History
	completer   completion.Completer
	hinter      *completion.Hinter
	highlighter highlight.Highlighter
	validator   Validator
	rend        *renderer.Renderer
	sink        renderer.Sink
	parser      *key.Parser
	log         *Logger
	id          string

	in      io.Reader
	input   chan []byte
	started bool

	width       int
	historyFile string

	promptStyle    core.Style
	hintStyle      core.Style
	selectionStyle core.Style

	menuActive bool
	menu       []completion.Suggestion
	menuIdx    int
	menuStart  int
	menuEnd    int
}

// Option configures a LineEditor.
type Option func(*LineEditor)

// WithInput sets the byte source, normally the raw-mode tty.
func WithInput(r io.Reader) Option {
	return func(l *LineEditor) { l.in = r }
}

// WithSink sets where render operations go.
func WithSink(s renderer.Sink) Option {
	return func(l *LineEditor) { l.sink = s }
}

// WithKeymap replaces the default keymap.
func WithKeymap(k *keymap.Keymap) Option {
	return func(l *LineEditor) { l.keys = k }
}

// WithHistory replaces the default history.
func WithHistory(h *history.History) Option {
	return func(l *LineEditor) { l.hist = h }
}

// WithHistoryFile persists accepted lines to path as they happen.
func WithHistoryFile(path string) Option {
	return func(l *LineEditor) { l.historyFile = path }
}

// WithCompleter sets the tab completer.
func WithCompleter(c completion.Completer) Option {
	return func(l *LineEditor) { l.completer = c }
}

// WithHinter sets the inline hinter.
func WithHinter(h *completion.Hinter) Option {
	return func(l *LineEditor) { l.hinter = h }
}

// WithHighlighter sets the syntax highlighter.
func WithHighlighter(h highlight.Highlighter) Option {
	return func(l *LineEditor) { l.highlighter = h }
}

// WithValidator sets the multiline validator.
func WithValidator(v Validator) Option {
	return func(l *LineEditor) { l.validator = v }
}

// WithLogger sets the session logger.
func WithLogger(log *Logger) Option {
	return func(l *LineEditor) { l.log = log }
}

// WithWidth sets the terminal width in cells.
func WithWidth(w int) Option {
	return func(l *LineEditor) { l.width = w }
}

// WithUndoLimit caps the engine's undo stack.
func WithUndoLimit(n int) Option {
	return func(l *LineEditor) { l.eng = engine.New(engine.WithMaxUndoEntries(n)) }
}

// WithTheme pulls prompt, hint and selection styles from a theme.
func WithTheme(t *highlight.Theme) Option {
	return func(l *LineEditor) {
		l.promptStyle = t.StyleOr("prompt", l.promptStyle)
		l.hintStyle = t.StyleOr("hint", l.hintStyle)
		l.selectionStyle = t.StyleOr("selection", l.selectionStyle)
	}
}

// New creates a line editor. Without options it reads stdin, writes
// ANSI to stdout, and uses the emacs keymap.
func New(opts ...Option) *LineEditor {
	l := &LineEditor{
		eng:            engine.New(),
		keys:           keymap.NewDefault(),
		hist:           history.New(),
		highlighter:    highlight.None{},
		validator:      AcceptAll{},
		log:            NullLogger,
		id:             uuid.NewString(),
		in:             os.Stdin,
		width:          80,
		promptStyle:    core.DefaultStyle(),
		hintStyle:      core.DefaultStyle().Dim(),
		selectionStyle: core.DefaultStyle().Reverse(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sink == nil {
		l.sink = term.NewAnsiSink(os.Stdout)
	}
	if l.parser == nil {
		l.parser = key.NewParser(os.Getenv("TERM"))
	}
	l.rend = renderer.New(l.sink)
	l.log.Debug("session %s created", l.id)
	return l
}

// History exposes the editor's history.
func (l *LineEditor) History() *history.History {
	return l.hist
}

// Keymap exposes the editor's keymap.
func (l *LineEditor) Keymap() *keymap.Keymap {
	return l.keys
}

// PrintLine writes program output between ReadLine calls, leaving the
// next prompt on a fresh row.
func (l *LineEditor) PrintLine(text string) {
	if p, ok := l.sink.(printer); ok {
		if err := p.Print(text); err != nil {
			l.log.Error("print line: %v", err)
		}
	}
	l.rend.Invalidate()
}

// Resize tells the editor the terminal width changed. The next render
// rewraps and repaints everything.
func (l *LineEditor) Resize(width int) {
	if width < 1 {
		width = 1
	}
	l.width = width
	l.rend.Invalidate()
}

// ReadLine runs one interactive edit and returns the resulting line
// with the signal that ended it.
func (l *LineEditor) ReadLine(prompt string) (string, Signal, error) {
	l.startReader()
	l.eng.Reset()
	l.hist.ResetNavigation()
	l.closeMenu()
	l.rend.Invalidate()

	for {
		if err := l.render(prompt); err != nil {
			return "", SignalEndOfFile, err
		}
		ev, ok, err := l.nextEvent()
		if err != nil {
			if l.eng.IsEmpty() {
				l.finish()
				return "", SignalEndOfFile, nil
			}
			line := l.eng.Text()
			l.acceptLine(line)
			return line, SignalLine, nil
		}
		if !ok {
			continue
		}
		if line, sig, done := l.handleEvent(ev); done {
			return line, sig, nil
		}
	}
}

func (l *LineEditor) startReader() {
	if l.started {
		return
	}
	l.started = true
	l.input = make(chan []byte, 8)
	go func(r io.Reader, out chan<- []byte) {
		defer close(out)
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				out <- chunk
			}
			if err != nil {
				return
			}
		}
	}(l.in, l.input)
}

// nextEvent blocks for the next decoded key event. err is non-nil
// only when the input source is exhausted.
func (l *LineEditor) nextEvent() (key.Event, bool, error) {
	if ev, ok := l.parser.Next(); ok {
		return ev, true, nil
	}
	for {
		var timeout <-chan time.Time
		if l.parser.Pending() {
			timeout = time.After(escTimeout)
		}
		select {
		case chunk, open := <-l.input:
			if !open {
				if ev, ok := l.parser.Flush(); ok {
					return ev, true, nil
				}
				return key.Event{}, false, io.EOF
			}
			l.parser.Feed(chunk)
			if ev, ok := l.parser.Next(); ok {
				return ev, true, nil
			}
		case <-timeout:
			if ev, ok := l.parser.Flush(); ok {
				return ev, true, nil
			}
		}
	}
}

// handleEvent applies one key event. done is true when the ReadLine
// call should return.
func (l *LineEditor) handleEvent(ev key.Event) (string, Signal, bool) {
	if ev.Key == key.KeyPaste {
		l.closeMenu()
		text := strings.ReplaceAll(ev.Text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		l.eng.Apply(engine.InsertText(text))
		return "", 0, false
	}

	action, bound := l.keys.Lookup(ev.Name())
	if !bound {
		if ev.IsRune() && l.keys.Mode() != keymap.ModeViNormal {
			l.eng.Apply(engine.InsertChar(ev.Rune))
			l.closeMenu()
		}
		return "", 0, false
	}

	if !strings.HasPrefix(action, "complete") {
		l.closeMenu()
	}

	if cmd, ok := engine.CommandFromName(action); ok {
		l.eng.Apply(cmd)
		return "", 0, false
	}
	return l.handleAction(action)
}

func (l *LineEditor) handleAction(action string) (string, Signal, bool) {
	switch action {
	case "accept":
		line := l.eng.Text()
		if l.validator.Validate(line) == ValidationIncomplete {
			l.eng.Apply(engine.Command{Kind: engine.KindInsertNewline})
			return "", 0, false
		}
		l.acceptLine(line)
		return line, SignalLine, true

	case "interrupt":
		l.log.Debug("session %s interrupted", l.id)
		l.finish()
		return "", SignalInterrupt, true

	case "eof":
		l.finish()
		return "", SignalEndOfFile, true

	case "delete-or-eof":
		if l.eng.IsEmpty() {
			l.finish()
			return "", SignalEndOfFile, true
		}
		l.eng.Apply(engine.Command{Kind: engine.KindDelete})

	case "clear-screen":
		if c, ok := l.sink.(clearer); ok {
			if err := c.Clear(); err != nil {
				l.log.Error("clear screen: %v", err)
			}
		}
		l.rend.Invalidate()

	case "history.previous":
		l.historyPrevious()

	case "history.next":
		l.historyNext()

	case "history.search":
		l.hist.StartSubstring(l.eng.Text())
		if line, ok := l.hist.Previous(l.eng.Text()); ok {
			l.eng.LoadText(line)
		}

	case "complete":
		l.complete(1)

	case "complete.next":
		l.complete(1)

	case "complete.previous":
		l.complete(-1)

	case "hint.accept":
		if hint := l.currentHint(); hint != "" {
			l.eng.Apply(engine.InsertText(hint))
		}

	case "mode.emacs":
		l.setMode(keymap.ModeEmacs)
	case "mode.vi-insert":
		l.setMode(keymap.ModeViInsert)
	case "mode.vi-normal":
		l.setMode(keymap.ModeViNormal)
	}
	return "", 0, false
}

func (l *LineEditor) setMode(m keymap.Mode) {
	if err := l.keys.SetMode(m); err != nil {
		l.log.Error("set mode: %v", err)
	}
}

// historyPrevious moves up within a multiline buffer, then recalls
// older history entries.
func (l *LineEditor) historyPrevious() {
	b := l.eng.Buffer()
	if !b.IsAtFirstLine() {
		l.eng.Apply(engine.Command{Kind: engine.KindMoveLineUp})
		return
	}
	if line, ok := l.hist.Previous(l.eng.Text()); ok {
		l.eng.LoadText(line)
	}
}

func (l *LineEditor) historyNext() {
	b := l.eng.Buffer()
	if !b.IsAtLastLine() {
		l.eng.Apply(engine.Command{Kind: engine.KindMoveLineDown})
		return
	}
	if line, ok := l.hist.Next(); ok {
		l.eng.LoadText(line)
	}
}

// complete opens the suggestion cycle or steps it by delta.
func (l *LineEditor) complete(delta int) {
	if l.completer == nil {
		return
	}
	if l.menuActive {
		l.menuIdx = (l.menuIdx + delta + len(l.menu)) % len(l.menu)
		l.applyMenu()
		return
	}
	suggestions := l.completer.Complete(l.eng.Text(), l.eng.Cursor())
	if len(suggestions) == 0 {
		return
	}
	l.menu = suggestions
	l.menuIdx = 0
	if delta < 0 {
		l.menuIdx = len(suggestions) - 1
	}
	l.menuStart = suggestions[0].Span.Start
	l.menuEnd = suggestions[0].Span.End
	l.applyMenu()
	if len(suggestions) > 1 {
		l.menuActive = true
	}
}

// applyMenu splices the current suggestion over the span the previous
// one occupied.
func (l *LineEditor) applyMenu() {
	sug := l.menu[l.menuIdx]
	l.eng.Apply(engine.ReplaceRange(l.menuStart, l.menuEnd, sug.Value))
	l.menuEnd = l.menuStart + buffer.Count(sug.Value)
}

func (l *LineEditor) closeMenu() {
	l.menuActive = false
	l.menu = nil
	l.menuIdx = 0
}

func (l *LineEditor) currentHint() string {
	if l.hinter == nil {
		return ""
	}
	return l.hinter.Hint(l.eng.Text(), l.eng.Cursor())
}

// acceptLine records the accepted line and leaves the terminal on a
// fresh row.
func (l *LineEditor) acceptLine(line string) {
	before := l.hist.Len()
	l.hist.Add(line)
	if l.historyFile != "" && l.hist.Len() > before {
		entries := l.hist.Entries()
		if err := history.Append(l.historyFile, entries[len(entries)-1]); err != nil {
			l.log.Error("append history: %v", err)
		}
	}
	l.log.Debug("session %s accepted %d graphemes", l.id, buffer.Count(line))
	l.finish()
}

func (l *LineEditor) finish() {
	if f, ok := l.sink.(finisher); ok {
		if err := f.Finish(); err != nil {
			l.log.Error("finish line: %v", err)
		}
	}
	l.rend.Invalidate()
}

// render lays out the buffer plus the inline hint and pushes the diff
// to the sink.
func (l *LineEditor) render(promptText string) error {
	text := l.eng.Text()
	cursor := l.eng.Cursor()

	spans := l.highlighter.Highlight(text)
	if start, end, ok := l.eng.Buffer().SelectionRange(); ok {
		spans = append(spans, core.StyleSpan{Start: start, End: end, Style: l.selectionStyle})
	}

	display := text
	if hint := l.currentHint(); hint != "" {
		n := buffer.Count(text)
		display = text + hint
		spans = append(spans, core.StyleSpan{
			Start: n,
			End:   n + buffer.Count(hint),
			Style: l.hintStyle,
		})
	}

	prompt := layout.PromptSpec{
		Left: core.StyledRun{Text: promptText, Style: l.promptStyle},
	}
	lay := layout.Compute(prompt, display, cursor, l.width, spans)
	return l.rend.Render(lay)
}
