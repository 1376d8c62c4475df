package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/fivemoreminix/qsyntax/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// TextEdit is a field for line-based editing with syntax highlighting. Every
// edit tells the Highlighter which lines changed, and drawing highlights
// just the lines that need it.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many spaces to indent by
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll
	colorscheme      *buffer.Colorscheme

	baseComponent
}

// NewTextEdit will initialize the buffer using the given 'contents'. def is
// the definition to highlight with, or nil for plain text.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, def *syntax.Definition, colorscheme *buffer.Colorscheme, theme *Theme) *TextEdit {
	te := &TextEdit{
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		colorscheme:   colorscheme,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	te.SetDefinition(def)
	return te
}

// SetContents replaces the buffer. The line endings are determined to be
// either CRLF or LF by the first line delimiter.
func (t *TextEdit) SetContents(contents []byte) {
	var i int
loop:
	for i < len(contents) {
		switch contents[i] {
		case '\n':
			t.IsCRLF = false
			break loop
		case '\r':
			t.IsCRLF = true
			break loop
		}
		_, size := utf8.DecodeRune(contents[i:])
		i += size
	}

	var def *syntax.Definition
	if t.Highlighter != nil {
		def = t.Highlighter.Definition()
	}
	if contents == nil {
		contents = []byte{}
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(t.Buffer)
	t.scrollx, t.scrolly = 0, 0
	t.Highlighter = buffer.NewHighlighter(t.Buffer, def, t.colorscheme)
}

// SetDefinition changes the language the TextEdit is highlighted as.
func (t *TextEdit) SetDefinition(def *syntax.Definition) {
	t.Highlighter.SetDefinition(def)
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// Deleting a line delimiter joins two lines.
func (t *TextEdit) Delete(forwards bool) {
	line, col := t.cursor.GetLineCol()

	if forwards {
		switch {
		case col < t.Buffer.RunesInLine(line):
			t.Buffer.Remove(line, col, line, col+1)
			t.Highlighter.InvalidateLines(line, line)
		case line < t.Buffer.Lines()-1:
			t.Buffer.Remove(line, col, line+1, 0)
			t.Highlighter.LinesRemoved(line, 1)
		default:
			return // At the end of the buffer
		}
	} else {
		switch {
		case col > 0:
			t.Buffer.Remove(line, col-1, line, col)
			t.Highlighter.InvalidateLines(line, line)
			t.cursor = t.cursor.SetLineCol(line, col-1)
		case line > 0:
			prevLen := t.Buffer.RunesInLine(line - 1)
			t.Buffer.Remove(line-1, prevLen, line, 0)
			t.Highlighter.LinesRemoved(line-1, 1)
			t.cursor = t.cursor.SetLineCol(line-1, prevLen)
		default:
			return // At the start of the buffer
		}
	}

	t.Dirty = true
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// lineBreaks turns CRLF and lone CR line breaks into LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Insert writes `contents` at the cursor position and moves the cursor past
// it. LF, CRLF and lone CR line breaks are all written as the buffer's
// own delimiter.
func (t *TextEdit) Insert(contents string) {
	if contents == "" {
		return
	}
	contents = lineBreaks.Replace(contents)
	if !t.UseHardTabs {
		contents = strings.ReplaceAll(contents, "\t", strings.Repeat(" ", t.TabSize))
	}

	line, col := t.cursor.GetLineCol()
	t.Buffer.Insert(line, col, []byte(strings.ReplaceAll(contents, "\n", t.GetLineDelimiter())))

	if inserted := strings.Count(contents, "\n"); inserted > 0 {
		t.Highlighter.LinesInserted(line, inserted)
		last := contents[strings.LastIndexByte(contents, '\n')+1:]
		t.cursor = t.cursor.SetLineCol(line+inserted, utf8.RuneCountInString(last))
	} else {
		t.Highlighter.InvalidateLines(line, line)
		t.cursor = t.cursor.SetLineCol(line, col+utf8.RuneCountInString(contents))
	}

	t.Dirty = true
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// GetLineBytes returns line with the buffer's delimiter, as it would be
// copied.
func (t *TextEdit) GetLineBytes(line int) []byte {
	return []byte(t.Buffer.Text(line) + t.GetLineDelimiter())
}

// visualCol returns the cell offset of col in line, counting tabs as TabSize
// cells and wide runes as two.
func (t *TextEdit) visualCol(line, col int) int {
	var x int
	for _, r := range t.Buffer.Text(line) {
		if col <= 0 {
			break
		}
		x += cellWidth(r, t.TabSize)
		col--
	}
	return x
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit, if the TextEdit is focused.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && t.screen != nil {
		line, col := t.cursor.GetLineCol()
		x := t.x + t.getColumnWidth() + t.visualCol(line, col) - t.scrollx
		(*t.screen).ShowCursor(x, t.y+line-t.scrolly)
	}
}

// ScrollToCursor scrolls the view if the cursor is out of it.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	if line >= t.scrolly+t.height { // If the new line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly {
		t.scrolly = line
	}

	viewWidth := t.width - t.getColumnWidth()
	x := t.visualCol(line, col)
	if x >= t.scrollx+viewWidth { // If the new column is right of view
		t.scrollx = x - viewWidth + 1
	} else if x < t.scrollx {
		t.scrollx = x
	}
	t.scrollx, t.scrolly = max(t.scrollx, 0), max(t.scrolly, 0)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// GetScroll returns the first line and cell in view.
func (t *TextEdit) GetScroll() (line, x int) {
	return t.scrolly, t.scrollx
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(3, 1+len(strconv.Itoa(t.Buffer.Lines()))) // Column has minimum width of 2
	}
	return columnWidth
}

// Draw renders the TextEdit component. Lines in view are highlighted first,
// along with any invalidated line above them.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.Lines()
	columnStyle := t.theme.GetOrDefault("TextEditColumn")
	defaultStyle := t.colorscheme.GetStyle(syntax.Normal)

	t.Highlighter.UpdateInvalidatedLines(t.scrolly, t.scrolly+t.height-1)

	for lineY := t.y; lineY < t.y+t.height; lineY++ {
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, t.x+columnWidth, lineY, t.width-columnWidth, 1, ' ', defaultStyle)

		lineNumStr := ""
		if line < bufferLines {
			lineNumStr = strconv.Itoa(line + 1)
			t.drawLine(s, line, lineY, t.x+columnWidth, defaultStyle)
		}

		if columnWidth > 0 {
			DrawStr(s, t.x, lineY, fmt.Sprintf("%*s│", columnWidth-1, lineNumStr), columnStyle)
		}
	}

	t.updateCursorVisibility()
}

// drawLine draws the visible part of line at lineY, starting at cell left.
func (t *TextEdit) drawLine(s tcell.Screen, line, lineY, left int, defaultStyle tcell.Style) {
	spans := t.Highlighter.GetLineSpans(line)
	var spanIdx int
	var x int // Cell offset into the line

	right := t.x + t.width
	var runeIdx int
	for _, r := range t.Buffer.Text(line) {
		for spanIdx < len(spans) && spans[spanIdx].End() <= runeIdx {
			spanIdx++
		}
		style := defaultStyle
		if spanIdx < len(spans) && spans[spanIdx].Offset <= runeIdx {
			style = t.Highlighter.GetStyle(spans[spanIdx].Format)
		}

		width := cellWidth(r, t.TabSize)
		col := left + x - t.scrollx
		if col >= right {
			break
		}
		if col >= left {
			if r == '\t' {
				DrawRect(s, col, lineY, min(width, right-col), 1, ' ', style)
			} else {
				s.SetContent(col, lineY, r, nil, style)
			}
		}

		x += width
		runeIdx++
	}
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if t.screen == nil {
		return
	}
	if v {
		t.updateCursorVisibility()
	} else {
		(*t.screen).HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.SetCursor(t.cursor.Up())
		case tcell.KeyDown:
			t.SetCursor(t.cursor.Down())
		case tcell.KeyLeft:
			t.SetCursor(t.cursor.Left())
		case tcell.KeyRight:
			t.SetCursor(t.cursor.Right())
		case tcell.KeyHome:
			t.SetCursor(t.cursor.Home())
		case tcell.KeyEnd:
			t.SetCursor(t.cursor.End())
		case tcell.KeyPgUp:
			line, col := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(line-t.height, col)) // Go a page up
		case tcell.KeyPgDn:
			line, col := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(line+t.height, col)) // Go a page down

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to four spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune()))
		default:
			return false
		}
		return true
	}
	return false
}
