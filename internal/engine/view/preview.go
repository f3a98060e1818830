package view

import (
	"strings"

	"github.com/rivo/uniseg"
)

// previewEllipsis terminates a truncated preview.
const previewEllipsis = "…"

// truncateGraphemes caps s at max grapheme clusters, appending an
// ellipsis when content was cut. The cut lands on a cluster boundary,
// never inside a multi-byte or multi-codepoint cluster.
func truncateGraphemes(s string, max int) (string, bool) {
	if max <= 0 {
		if len(s) == 0 {
			return "", false
		}
		return previewEllipsis, true
	}

	count := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, tail, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		count++
		if count > max {
			return s[:len(s)-len(rest)] + previewEllipsis, true
		}
		rest = tail
		state = newState
	}
	return s, false
}

// cellWidth measures the rendered width of a line in terminal cells,
// expanding tabs to the next tab stop.
func cellWidth(s string, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if !strings.ContainsRune(s, '\t') {
		return uniseg.StringWidth(s)
	}

	width := 0
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\t' {
			continue
		}
		width += uniseg.StringWidth(s[start:i])
		width += tabWidth - width%tabWidth
		start = i + 1
	}
	return width + uniseg.StringWidth(s[start:])
}
