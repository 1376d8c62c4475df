package buffer

import (
	"io"
)

// A Buffer holds the text being highlighted and addresses it by line and
// column. Lines and columns start at zero, columns count runes, and ranges
// are half-open: the end position is not part of the range.
//
// Positions out of range are clamped, not panics. A Buffer always has at
// least one line.
type Buffer interface {
	// Line returns the bytes of line including its delimiter. Do not write to
	// the result.
	Line(line int) []byte

	// Text returns line without its delimiter ("\n" or "\r\n").
	Text(line int) string

	// Bytes returns the whole buffer, most likely as a copy.
	Bytes() []byte

	// Insert copies value into the buffer at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes the text from startLine, startCol up to endLine, endCol.
	Remove(startLine, startCol, endLine, endCol int)

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines, which is the number of '\n' plus one.
	Lines() int

	// RunesInLine returns the number of runes in line, excluding the delimiter.
	RunesInLine(line int) int

	// ClampLineCol clamps line to the buffer, then col to zero through the
	// length of that line.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of line, col after clamping them.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset into a line and column.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
