package buffer

import (
	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

// lineData is what the Highlighter remembers about one line of the buffer.
type lineData struct {
	spans []syntax.Span
	end   syntax.State // State after the line, which the next line starts in
	valid bool
}

// A Highlighter keeps the highlighting of a Buffer. Lines are highlighted
// on demand, top down, because each line starts in the state the line above
// ended in. After an edit only the touched lines are invalidated; updating
// then stops as soon as a line ends in the same state as before, since
// nothing below it can have changed.
type Highlighter struct {
	Buffer      Buffer
	Colorscheme *Colorscheme

	hl    *syntax.Highlighter
	lines []lineData
}

// NewHighlighter highlights buffer with def. def may be nil, in which case
// every line is plain text.
func NewHighlighter(buffer Buffer, def *syntax.Definition, colorscheme *Colorscheme) *Highlighter {
	h := &Highlighter{
		Buffer:      buffer,
		Colorscheme: colorscheme,
		lines:       make([]lineData, buffer.Lines()),
	}
	h.SetDefinition(def)
	return h
}

// SetDefinition switches to another definition and invalidates everything.
func (h *Highlighter) SetDefinition(def *syntax.Definition) {
	h.hl = nil
	if def != nil {
		h.hl = syntax.NewHighlighter(def, nil)
	}
	h.InvalidateLines(0, len(h.lines)-1)
}

// Definition returns the definition in use, or nil.
func (h *Highlighter) Definition() *syntax.Definition {
	if h.hl == nil {
		return nil
	}
	return h.hl.Definition()
}

// LinesInserted tells the Highlighter that count lines were inserted after
// line. line itself is invalidated.
func (h *Highlighter) LinesInserted(line, count int) {
	if count > 0 && line >= 0 && line < len(h.lines) {
		h.lines = append(h.lines[:line+1], append(make([]lineData, count), h.lines[line+1:]...)...)
	}
	h.InvalidateLines(line, line)
}

// LinesRemoved tells the Highlighter that the count lines after line were
// joined into line. line itself is invalidated.
func (h *Highlighter) LinesRemoved(line, count int) {
	if count > 0 && line >= 0 && line < len(h.lines) {
		end := min(line+1+count, len(h.lines))
		h.lines = append(h.lines[:line+1], h.lines[end:]...)
	}
	h.InvalidateLines(line, line)
}

// InvalidateLines marks lines startLine through endLine, inclusive, as
// needing to be highlighted again.
func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	h.sync()
	for i := max(startLine, 0); i <= endLine && i < len(h.lines); i++ {
		h.lines[i].valid = false
	}
}

func (h *Highlighter) HasInvalidatedLines(startLine, endLine int) bool {
	for i := max(startLine, 0); i <= endLine && i < len(h.lines); i++ {
		if !h.lines[i].valid {
			return true
		}
	}
	return false
}

// UpdateInvalidatedLines brings lines startLine through endLine up to date,
// along with any invalid line above them. It returns how many lines were
// highlighted.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) int {
	h.sync()
	if endLine >= len(h.lines) {
		endLine = len(h.lines) - 1
	}
	if startLine > endLine {
		return 0
	}

	var highlighted int
	for i := 0; i <= endLine; i++ {
		if h.lines[i].valid {
			continue
		}
		if h.updateLine(i) && i+1 < len(h.lines) {
			h.lines[i+1].valid = false
		}
		highlighted++
	}
	return highlighted
}

// updateLine highlights line i and reports whether its end state changed.
func (h *Highlighter) updateLine(i int) bool {
	data := &h.lines[i]
	data.valid = true
	data.spans = data.spans[:0]

	text := h.Buffer.Text(i)
	if h.hl == nil {
		if n := len([]rune(text)); n > 0 {
			data.spans = append(data.spans, syntax.Span{Length: n})
		}
		return false
	}

	var start syntax.State
	if i > 0 {
		start = h.lines[i-1].end
	}
	end := h.hl.HighlightLine(text, start, func(s syntax.Span) {
		data.spans = append(data.spans, s)
	})
	changed := !end.Equal(data.end)
	data.end = end
	return changed
}

// sync resizes the cache to the buffer after edits that did not go through
// LinesInserted or LinesRemoved. Lines whose index changed are invalidated.
func (h *Highlighter) sync() {
	lines := h.Buffer.Lines()
	switch {
	case len(h.lines) < lines:
		from := len(h.lines) - 1
		h.lines = append(h.lines, make([]lineData, lines-len(h.lines))...)
		for i := max(from, 0); i < len(h.lines); i++ {
			h.lines[i].valid = false
		}
	case len(h.lines) > lines:
		h.lines = h.lines[:lines]
		h.lines[lines-1].valid = false
	}
}

// GetLineSpans returns the spans of line from the last update, ordered by
// offset. Offsets and lengths count runes.
func (h *Highlighter) GetLineSpans(line int) []syntax.Span {
	if line < 0 || line >= len(h.lines) {
		return nil
	}
	return h.lines[line].spans
}

// GetLineState returns the state line ended in at the last update.
func (h *Highlighter) GetLineState(line int) syntax.State {
	if line < 0 || line >= len(h.lines) {
		return syntax.State{}
	}
	return h.lines[line].end
}

// GetStyle returns the style to draw text of format f with.
func (h *Highlighter) GetStyle(f syntax.Format) tcell.Style {
	return h.Colorscheme.GetStyle(f.Style)
}
