package buffer

import "math"

// A Cursor is a line and column in a Buffer. Its methods emulate the common
// cursor actions and return the moved Cursor, so a caller can look at where
// a move would go before committing to it.
//
// Moving up or down keeps the column the cursor was horizontally placed at,
// even across shorter lines.
type Cursor struct {
	buffer  Buffer
	line    int
	col     int
	wantCol int
}

func NewCursor(in Buffer) Cursor {
	return Cursor{buffer: in}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // Wrap to the end of the line above
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	c.wantCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.Lines()-1 {
		c.line, c.col = c.line+1, 0
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	c.wantCol = c.col
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 {
		c.col, c.wantCol = 0, 0
		return c
	}
	c.line, c.col = c.buffer.ClampLineCol(c.line-1, c.wantCol)
	return c
}

func (c Cursor) Down() Cursor {
	if c.line >= c.buffer.Lines()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32)
		c.wantCol = c.col
		return c
	}
	c.line, c.col = c.buffer.ClampLineCol(c.line+1, c.wantCol)
	return c
}

// Home moves to the first column of the line.
func (c Cursor) Home() Cursor {
	c.col, c.wantCol = 0, 0
	return c
}

// End moves past the last rune of the line.
func (c Cursor) End() Cursor {
	c.col = c.buffer.RunesInLine(c.line)
	c.wantCol = c.col
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol clamps line to the buffer and col to that line.
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	c.wantCol = c.col
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}
