package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`. Wide runes
// take two cells. Returns the number of cells drawn.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	col := x
	for _, r := range str {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col - x
}

// DrawStrClipped is DrawStr, but nothing is drawn at or past `x+width`. The
// string is truncated with an ellipsis when it does not fit.
func DrawStrClipped(s tcell.Screen, x, y, width int, str string, style tcell.Style) int {
	if width <= 0 {
		return 0
	}
	return DrawStr(s, x, y, runewidth.Truncate(str, width, "…"), style)
}
