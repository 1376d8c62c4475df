package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/fivemoreminix/qsyntax/ui/buffer"
)

// dumpSpans writes the highlighting of every line of buf to w, one line per
// buffer line:
//
//	3 [Normal BlockComment] Comment:"/* a" Normal Text:" "
//
// The bracketed list is the context stack the line ends in.
func dumpSpans(w io.Writer, buf buffer.Buffer, def *syntax.Definition) error {
	h := buffer.NewHighlighter(buf, def, nil)
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	var sb strings.Builder
	for line := 0; line < buf.Lines(); line++ {
		sb.Reset()
		sb.WriteString(strconv.Itoa(line + 1))
		sb.WriteString(" [")
		if d := h.GetLineState(line).Data(); d != nil {
			for i, ctx := range d.Contexts() {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(ctx.Name)
			}
		}
		sb.WriteByte(']')

		text := []rune(buf.Text(line))
		for _, s := range h.GetLineSpans(line) {
			name := s.Format.Name
			if name == "" {
				name = s.Format.Style.String()
			}
			fmt.Fprintf(&sb, " %s:%q", name, string(text[s.Offset:s.End()]))
		}
		sb.WriteByte('\n')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
