package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box with a label in front of it, as
// used for prompts on the status line. Enter calls OnSubmit with the text and
// Escape calls OnCancel.
type InputField struct {
	Label    string
	OnSubmit func(text string)
	OnCancel func()

	text      []rune
	cursorPos int // Rune offset into text
	scrollPos int // First rune in view
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, label string, theme *Theme) *InputField {
	return &InputField{
		Label:         label,
		screen:        screen,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (f *InputField) Text() string {
	return string(f.text)
}

// SetText replaces the text and moves the cursor to its end.
func (f *InputField) SetText(text string) {
	f.text = []rune(text)
	f.SetCursorPos(len(f.text))
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// fieldWidth is the number of cells left for the text after the label.
func (f *InputField) fieldWidth() int {
	return max(f.width-runewidth.StringWidth(f.Label), 1)
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = Clamp(offset, 0, len(f.text))

	if width := f.fieldWidth(); offset >= f.scrollPos+width { // If cursor position is out of view to the right...
		f.scrollPos = offset - width + 1 // Scroll just enough to view that column
	} else if offset < f.scrollPos {
		f.scrollPos = offset
	}

	f.cursorPos = offset
	f.updateCursorVisibility()
}

func (f *InputField) updateCursorVisibility() {
	if f.focused && f.screen != nil {
		x := f.x + runewidth.StringWidth(f.Label) + runewidth.StringWidth(string(f.text[f.scrollPos:f.cursorPos]))
		(*f.screen).ShowCursor(x, f.y)
	}
}

// Delete removes the rune after the cursor if forward is true, otherwise the
// rune before it.
func (f *InputField) Delete(forward bool) {
	pos := f.cursorPos
	if !forward {
		pos--
	}
	if pos < 0 || pos >= len(f.text) {
		return
	}
	f.text = append(f.text[:pos], f.text[pos+1:]...)
	f.SetCursorPos(pos)
}

func (f *InputField) insert(r rune) {
	f.text = append(f.text[:f.cursorPos], append([]rune{r}, f.text[f.cursorPos:]...)...)
	f.SetCursorPos(f.cursorPos + 1)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("StatusBar")

	DrawRect(s, f.x, f.y, f.width, 1, ' ', style) // Draw background
	labelWidth := DrawStrClipped(s, f.x, f.y, f.width, f.Label, style)

	// Draw only the runes that fit
	col := f.x + labelWidth
	for _, r := range f.text[f.scrollPos:] {
		w := runewidth.RuneWidth(r)
		if col+w > f.x+f.width {
			break
		}
		s.SetContent(col, f.y, r, nil, style)
		col += w
	}

	f.updateCursorVisibility()
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if f.screen == nil {
		return
	}
	if v {
		f.updateCursorVisibility()
	} else {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len(f.text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyEnter:
			if f.OnSubmit != nil {
				f.OnSubmit(f.Text())
			}
		case tcell.KeyEscape:
			if f.OnCancel != nil {
				f.OnCancel()
			}
		case tcell.KeyRune:
			f.insert(ev.Rune())
		default:
			return false
		}
		return true
	}
	return false
}
