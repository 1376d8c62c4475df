package ui

import "github.com/mattn/go-runewidth"

// Clamp keeps `v` within `a` and `b` numerically. `a` must be smaller than `b`.
// Returns clamped `v`.
func Clamp(v, a, b int) int {
	return max(a, min(v, b))
}

// cellWidth is how many terminal cells r takes up. Tabs take tabSize cells
// and runes of zero width are given one so the cursor can land on them.
func cellWidth(r rune, tabSize int) int {
	if r == '\t' {
		return tabSize
	}
	return max(runewidth.RuneWidth(r), 1)
}
