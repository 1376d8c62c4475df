package buffer

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

var newline = []byte{'\n'}

// RopeBuffer is a Buffer backed by a rope, so edits in large files stay
// cheap.
type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node { return (*rope.Node)(b) }

// lineBounds returns the byte range of line, delimiter included. line must
// exist.
func (b *RopeBuffer) lineBounds(line int) (start, end int) {
	n := b.node()
	end = n.Len()
	var seen int // Newlines passed so far
	n.IndexAllFunc(0, n.Len(), newline, func(idx int) bool {
		seen++
		switch seen {
		case line:
			start = idx + 1
		case line + 1:
			end = idx + 1
			return true // Found the end of the line; stop
		}
		return false
	})
	return start, end
}

func (b *RopeBuffer) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if last := b.Lines() - 1; line > last {
		return last
	}
	return line
}

func (b *RopeBuffer) Line(line int) []byte {
	start, end := b.lineBounds(b.clampLine(line))
	if start >= end {
		return nil
	}
	return b.node().Slice(start, end)
}

func (b *RopeBuffer) Text(line int) string {
	data := bytes.TrimSuffix(b.Line(line), newline)
	return string(bytes.TrimSuffix(data, []byte{'\r'}))
}

func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

func (b *RopeBuffer) Insert(line, col int, value []byte) {
	if len(value) == 0 {
		return
	}
	b.node().Insert(b.LineColToPos(line, col), value)
}

func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)
	if end <= start {
		return
	}
	b.node().Remove(start, end)
}

func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

func (b *RopeBuffer) Lines() int {
	n := b.node()
	return n.Count(0, n.Len(), newline) + 1
}

func (b *RopeBuffer) RunesInLine(line int) int {
	return utf8.RuneCountInString(b.Text(line))
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	line = b.clampLine(line)
	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}
	return line, col
}

func (b *RopeBuffer) LineColToPos(line, col int) int {
	line, col = b.ClampLineCol(line, col)
	start, _ := b.lineBounds(line)
	text := b.Text(line)

	offset := 0
	for ; col > 0; col-- {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return start + offset
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	n := b.node()
	if pos <= 0 {
		return 0, 0
	}
	if pos > n.Len() {
		pos = n.Len()
	}

	line := n.Count(0, pos, newline)
	start, _ := b.lineBounds(line)
	if pos <= start {
		return line, 0
	}
	return line, utf8.RuneCount(n.Slice(start, pos))
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}
