package highlight

import (
	"unicode"

	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/renderer/core"
)

// Highlighter produces style spans over buffer text. Span indices are
// grapheme indices.
type Highlighter interface {
	Highlight(text string) []core.StyleSpan
}

// None is a highlighter that styles nothing.
type None struct{}

// Highlight implements Highlighter.
func (None) Highlight(string) []core.StyleSpan {
	return nil
}

// Keyword highlights known words in one style and, optionally,
// everything else in another. Matching is exact and word-bounded.
type Keyword struct {
	words        map[string]bool
	keywordStyle core.Style
	defaultStyle core.Style
	useDefault   bool
}

// KeywordOption configures a Keyword highlighter.
type KeywordOption func(*Keyword)

// WithKeywordStyle overrides the style applied to matched words.
func WithKeywordStyle(s core.Style) KeywordOption {
	return func(k *Keyword) {
		k.keywordStyle = s
	}
}

// WithDefaultStyle sets a style for non-keyword text.
func WithDefaultStyle(s core.Style) KeywordOption {
	return func(k *Keyword) {
		k.defaultStyle = s
		k.useDefault = true
	}
}

// NewKeyword builds a highlighter for the given words.
func NewKeyword(words []string, opts ...KeywordOption) *Keyword {
	k := &Keyword{
		words:        make(map[string]bool, len(words)),
		keywordStyle: core.NewStyle(core.ColorGreen).Bold(),
	}
	for _, w := range words {
		k.words[w] = true
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Highlight implements Highlighter.
func (k *Keyword) Highlight(text string) []core.StyleSpan {
	clusters := buffer.Split(text)
	var spans []core.StyleSpan

	i := 0
	for i < len(clusters) {
		if !isWordCluster(clusters[i]) {
			j := i
			for j < len(clusters) && !isWordCluster(clusters[j]) {
				j++
			}
			if k.useDefault {
				spans = append(spans, core.StyleSpan{Start: i, End: j, Style: k.defaultStyle})
			}
			i = j
			continue
		}
		j := i
		word := ""
		for j < len(clusters) && isWordCluster(clusters[j]) {
			word += clusters[j]
			j++
		}
		style := k.defaultStyle
		use := k.useDefault
		if k.words[word] {
			style = k.keywordStyle
			use = true
		}
		if use {
			spans = append(spans, core.StyleSpan{Start: i, End: j, Style: style})
		}
		i = j
	}
	return spans
}

func isWordCluster(g string) bool {
	for _, r := range g {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return true
		}
	}
	return false
}
