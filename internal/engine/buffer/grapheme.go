package buffer

import (
	"github.com/rivo/uniseg"
)

// Split segments a string into grapheme clusters.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	clusters := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

// Count returns the number of grapheme clusters in a string.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
