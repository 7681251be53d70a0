package completion

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/linestorm/internal/engine/buffer"
)

// Span is the grapheme range [Start, End) a suggestion replaces.
type Span struct {
	Start int
	End   int
}

// Suggestion is one completion candidate.
type Suggestion struct {
	Value string
	Span  Span
}

// Completer produces suggestions for a line and cursor position. pos
// is a grapheme index.
type Completer interface {
	Complete(line string, pos int) []Suggestion
}

// DefaultMinWordLen is the shortest word the trie completer indexes.
const DefaultMinWordLen = 2

// TrieCompleter completes from a fixed word list held in a prefix
// trie. Lookup cost is proportional to the prefix length plus the
// number of matches.
type TrieCompleter struct {
	root       *trieNode
	minWordLen int
	inclusion  map[rune]bool
}

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

// TrieOption configures a TrieCompleter.
type TrieOption func(*TrieCompleter)

// WithMinWordLen sets the minimum indexed word length.
func WithMinWordLen(n int) TrieOption {
	return func(c *TrieCompleter) {
		c.minWordLen = n
	}
}

// WithInclusions adds runes treated as word characters when locating
// the word under the cursor, e.g. '-' or '_'.
func WithInclusions(runes ...rune) TrieOption {
	return func(c *TrieCompleter) {
		for _, r := range runes {
			c.inclusion[r] = true
		}
	}
}

// NewTrieCompleter builds a completer over the given words.
func NewTrieCompleter(words []string, opts ...TrieOption) *TrieCompleter {
	c := &TrieCompleter{
		root:       &trieNode{},
		minWordLen: DefaultMinWordLen,
		inclusion:  map[rune]bool{'-': true, '_': true},
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, w := range words {
		c.Insert(w)
	}
	return c
}

// Insert adds one word to the trie. Words shorter than the minimum
// length are ignored.
func (c *TrieCompleter) Insert(word string) {
	if len([]rune(word)) < c.minWordLen {
		return
	}
	node := c.root
	for _, r := range word {
		if node.children == nil {
			node.children = make(map[rune]*trieNode)
		}
		next, ok := node.children[r]
		if !ok {
			next = &trieNode{}
			node.children[r] = next
		}
		node = next
	}
	node.terminal = true
}

// Complete returns the indexed words starting with the word fragment
// left of pos, sorted, each spanning that fragment.
func (c *TrieCompleter) Complete(line string, pos int) []Suggestion {
	start, prefix := c.wordBefore(line, pos)
	if prefix == "" {
		return nil
	}

	node := c.root
	for _, r := range prefix {
		next, ok := node.children[r]
		if !ok {
			return nil
		}
		node = next
	}

	var words []string
	collect(node, prefix, &words)
	sort.Strings(words)

	span := Span{Start: start, End: pos}
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Value: w, Span: span}
	}
	return suggestions
}

func collect(node *trieNode, prefix string, out *[]string) {
	if node.terminal {
		*out = append(*out, prefix)
	}
	for r, child := range node.children {
		collect(child, prefix+string(r), out)
	}
}

// wordBefore finds the word fragment ending at pos, returning its
// start grapheme index and text.
func (c *TrieCompleter) wordBefore(line string, pos int) (int, string) {
	clusters := buffer.Split(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(clusters) {
		pos = len(clusters)
	}
	start := pos
	for start > 0 && c.isWordCluster(clusters[start-1]) {
		start--
	}
	return start, strings.Join(clusters[start:pos], "")
}

func (c *TrieCompleter) isWordCluster(g string) bool {
	for _, r := range g {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || c.inclusion[r] {
			return true
		}
	}
	return false
}
