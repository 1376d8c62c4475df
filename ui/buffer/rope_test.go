package buffer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRopePosToLineCol(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("line0\nline1\n\nline3\n"))
	//line0
	//line1
	//
	//line3
	//

	line, col := buf.PosToLineCol(0)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	line, col = buf.PosToLineCol(buf.Len() - 1) // The last delimiter
	assert.Equal(t, 3, line)
	assert.Equal(t, 5, col)

	line, col = buf.PosToLineCol(12) // Start of the empty line
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)

	line, col = buf.PosToLineCol(buf.Len())
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)
}

func TestRopeLineColToPos(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("ab\nは(c)\r\nend"))

	assert.Equal(t, 0, buf.LineColToPos(0, 0))
	assert.Equal(t, 2, buf.LineColToPos(0, 99), "clamped to the delimiter")
	assert.Equal(t, 3, buf.LineColToPos(1, 0))
	assert.Equal(t, 6, buf.LineColToPos(1, 1), "multi-byte runes count once")
	assert.Equal(t, 9, buf.LineColToPos(1, 4), "clamped before CRLF")
	assert.Equal(t, 14, buf.LineColToPos(2, 3))
	assert.Equal(t, 0, buf.LineColToPos(-1, -1))

	line, col := buf.PosToLineCol(6)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestRopeInserting(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("some"))
	buf.Insert(0, 4, []byte(" text\n")) // After "some"
	buf.Insert(0, 0, []byte("with\n\t"))
	//with
	//	some text
	//

	assert.Equal(t, 3, buf.Lines())
	assert.Equal(t, "\tsome text", buf.Text(1))

	buf.Remove(0, 4, 1, 6) // "\n\tsome "
	assert.Equal(t, "withtext\n", string(buf.Bytes()))

	buf.Remove(0, 4, 0, 2) // Backwards ranges are ignored
	assert.Equal(t, "withtext\n", string(buf.Bytes()))

	buf.Remove(0, 8, 1, 0) // The delimiter
	assert.Equal(t, "withtext", string(buf.Bytes()))
	assert.Equal(t, 1, buf.Lines())
}

func TestRopeBounds(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("this\nis (は)\n\tsome\r\ntext\n"))
	//this
	//is (は)
	//	some
	//text
	//

	assert.Equal(t, 5, buf.Lines())
	assert.Equal(t, 6, buf.RunesInLine(1))
	assert.Equal(t, 0, buf.RunesInLine(4))

	line, col := buf.ClampLineCol(15, 5) // Last line, first column
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)

	line, col = buf.ClampLineCol(4, -1)
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)

	line, col = buf.ClampLineCol(2, 9) // Third line, at the delimiter
	assert.Equal(t, 2, line)
	assert.Equal(t, 5, col)

	assert.Equal(t, "\tsome\r\n", string(buf.Line(2)))
	assert.Equal(t, "\tsome", buf.Text(2))
	assert.Equal(t, "", string(buf.Line(4)))
	assert.Equal(t, "this", buf.Text(-3))
}

func TestRopeEmpty(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte{})

	assert.Equal(t, 1, buf.Lines())
	assert.Equal(t, "", buf.Text(0))
	assert.Equal(t, 0, buf.LineColToPos(0, 3))

	buf.Insert(0, 0, []byte("x\ny"))
	assert.Equal(t, 2, buf.Lines())

	var out bytes.Buffer
	n, err := buf.WriteTo(&out)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "x\ny", out.String())
}
