// Package highlight turns buffer text into style spans for the
// renderer. Highlighters are pure: same text, same spans. The keyword
// highlighter colors known words; themes load from YAML so colors can
// change without recompiling.
package highlight
