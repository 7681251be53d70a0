package engine

// Kind identifies an edit command.
type Kind int

const (
	KindNone Kind = iota

	// Movement
	KindMoveToStart
	KindMoveToEnd
	KindMoveToLineStart
	KindMoveToLineEnd
	KindMoveLeft
	KindMoveRight
	KindMoveWordLeft
	KindMoveWordRight
	KindMoveLineUp
	KindMoveLineDown
	KindMoveRightUntil
	KindMoveRightBefore
	KindMoveLeftUntil
	KindMoveLeftBefore

	// Insertion
	KindInsertChar
	KindInsertText
	KindInsertNewline

	// Deletion
	KindBackspace
	KindDelete
	KindBackspaceWord
	KindDeleteWord
	KindClear
	KindClearToLineEnd

	// Cuts (deletions that fill the cut buffer)
	KindCutFromStart
	KindCutFromLineStart
	KindCutToEnd
	KindCutToLineEnd
	KindCutCurrentLine
	KindCutWordLeft
	KindCutWordRight
	KindCutSelection
	KindCutRightUntil
	KindCutRightBefore
	KindCutLeftUntil
	KindCutLeftBefore
	KindPasteBefore
	KindPasteAfter

	// Case and transposition
	KindUppercaseWord
	KindLowercaseWord
	KindCapitalizeChar
	KindSwapWords
	KindSwapGraphemes

	// Selection
	KindSelectAll
	KindStartSelection
	KindDropSelection

	// Collaborator mutation (completion insertion)
	KindReplaceRange

	// History
	KindUndo
	KindRedo
)

// Command is one keymap-independent edit instruction. It is an
// immutable value: Rune carries the character for InsertChar and the
// until/before motions, Text the payload for InsertText and
// ReplaceRange, Start/End the grapheme range for ReplaceRange.
type Command struct {
	Kind  Kind
	Rune  rune
	Text  string
	Start int
	End   int
}

// InsertChar builds a single-character insertion command.
func InsertChar(r rune) Command {
	return Command{Kind: KindInsertChar, Rune: r}
}

// InsertText builds an atomic text insertion command. Unlike a run of
// InsertChar commands it is always its own undo step.
func InsertText(s string) Command {
	return Command{Kind: KindInsertText, Text: s}
}

// ReplaceRange builds a replacement-range mutation, the path used by
// completion insertion. The range is in grapheme indices and is clamped
// on application.
func ReplaceRange(start, end int, text string) Command {
	return Command{Kind: KindReplaceRange, Start: start, End: end, Text: text}
}

// undoClass describes how a command interacts with transactions.
type undoClass int

const (
	undoIgnore   undoClass = iota // movement/selection: closes, records nothing
	undoCoalesce                  // InsertChar: may join the open transaction
	undoFull                      // every other mutation: own transaction
	undoControl                   // Undo/Redo themselves
)

func (k Kind) class() undoClass {
	switch k {
	case KindMoveToStart, KindMoveToEnd, KindMoveToLineStart, KindMoveToLineEnd,
		KindMoveLeft, KindMoveRight, KindMoveWordLeft, KindMoveWordRight,
		KindMoveLineUp, KindMoveLineDown,
		KindMoveRightUntil, KindMoveRightBefore, KindMoveLeftUntil, KindMoveLeftBefore,
		KindSelectAll, KindStartSelection, KindDropSelection:
		return undoIgnore
	case KindInsertChar:
		return undoCoalesce
	case KindUndo, KindRedo:
		return undoControl
	default:
		return undoFull
	}
}

// commandNames maps keymap action names to command kinds for all
// commands that need no argument beyond the key's own rune.
var commandNames = map[string]Kind{
	"cursor.start":           KindMoveToStart,
	"cursor.end":             KindMoveToEnd,
	"cursor.line-start":      KindMoveToLineStart,
	"cursor.line-end":        KindMoveToLineEnd,
	"cursor.left":            KindMoveLeft,
	"cursor.right":           KindMoveRight,
	"cursor.word-left":       KindMoveWordLeft,
	"cursor.word-right":      KindMoveWordRight,
	"cursor.up":              KindMoveLineUp,
	"cursor.down":            KindMoveLineDown,
	"edit.insert-newline":    KindInsertNewline,
	"edit.backspace":         KindBackspace,
	"edit.delete":            KindDelete,
	"edit.backspace-word":    KindBackspaceWord,
	"edit.delete-word":       KindDeleteWord,
	"edit.clear":             KindClear,
	"edit.clear-to-line-end": KindClearToLineEnd,
	"cut.from-start":         KindCutFromStart,
	"cut.from-line-start":    KindCutFromLineStart,
	"cut.to-end":             KindCutToEnd,
	"cut.to-line-end":        KindCutToLineEnd,
	"cut.current-line":       KindCutCurrentLine,
	"cut.word-left":          KindCutWordLeft,
	"cut.word-right":         KindCutWordRight,
	"cut.selection":          KindCutSelection,
	"paste.before":           KindPasteBefore,
	"paste.after":            KindPasteAfter,
	"case.upper-word":        KindUppercaseWord,
	"case.lower-word":        KindLowercaseWord,
	"case.capitalize":        KindCapitalizeChar,
	"swap.words":             KindSwapWords,
	"swap.graphemes":         KindSwapGraphemes,
	"select.all":             KindSelectAll,
	"select.start":           KindStartSelection,
	"select.drop":            KindDropSelection,
	"undo":                   KindUndo,
	"redo":                   KindRedo,
}

// CommandFromName resolves a keymap action name to a Command. Returns
// ok=false for names the engine does not own (session-level actions
// like accept or history navigation).
func CommandFromName(name string) (Command, bool) {
	k, ok := commandNames[name]
	if !ok {
		return Command{}, false
	}
	return Command{Kind: k}, true
}

// KnownCommand reports whether the engine owns the given action name.
func KnownCommand(name string) bool {
	_, ok := commandNames[name]
	return ok
}
