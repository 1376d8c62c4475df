package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A StatusBar is a single line with text aligned to its left and right ends.
// When Message is set it replaces the left text until cleared, drawn in the
// error style if IsError is set.
type StatusBar struct {
	Left    string
	Right   string
	Message string
	IsError bool

	baseComponent
}

func NewStatusBar(theme *Theme) *StatusBar {
	return &StatusBar{baseComponent: baseComponent{theme: theme, height: 1}}
}

// SetMessage shows msg until ClearMessage is called.
func (b *StatusBar) SetMessage(msg string, isError bool) {
	b.Message, b.IsError = msg, isError
}

func (b *StatusBar) ClearMessage() {
	b.Message, b.IsError = "", false
}

func (b *StatusBar) GetMinSize() (int, int) {
	return 0, 1
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)

	right := runewidth.StringWidth(b.Right)
	if right > b.width {
		right = 0 // Not enough room for both sides
	} else {
		DrawStr(s, b.x+b.width-right, b.y, b.Right, style)
	}

	left, leftStyle := b.Left, style
	if b.Message != "" {
		left = b.Message
		if b.IsError {
			leftStyle = b.theme.GetOrDefault("StatusBarError")
		}
	}
	DrawStrClipped(s, b.x, b.y, b.width-right-1, left, leftStyle)
}

// HandleEvent does nothing; a StatusBar is never focused.
func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}
