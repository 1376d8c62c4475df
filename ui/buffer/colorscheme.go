package buffer

import (
	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

// A Colorscheme maps the default text styles of the syntax package to
// terminal styles.
type Colorscheme map[syntax.TextStyle]tcell.Style

// GetStyle returns the tcell.Style for s. If s has no entry, the Normal entry
// is used, and if that is missing too, tcell.StyleDefault.
func (c *Colorscheme) GetStyle(s syntax.TextStyle) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val
		} else if s != syntax.Normal {
			if val, ok := (*c)[syntax.Normal]; ok {
				return val
			}
		}
	}
	return tcell.StyleDefault
}

// DefaultColorscheme uses only the first 16 colors present in most colored
// terminals.
func DefaultColorscheme() Colorscheme {
	base := tcell.Style{}.Background(tcell.ColorBlack)
	return Colorscheme{
		syntax.Normal:         base.Foreground(tcell.ColorSilver),
		syntax.Keyword:        base.Foreground(tcell.ColorWhite).Bold(true),
		syntax.ControlFlow:    base.Foreground(tcell.ColorWhite).Bold(true),
		syntax.Function:       base.Foreground(tcell.ColorTeal),
		syntax.BuiltIn:        base.Foreground(tcell.ColorBlue),
		syntax.Operator:       base.Foreground(tcell.ColorSilver),
		syntax.DataType:       base.Foreground(tcell.ColorPurple),
		syntax.DecVal:         base.Foreground(tcell.ColorFuchsia),
		syntax.BaseN:          base.Foreground(tcell.ColorFuchsia),
		syntax.Float:          base.Foreground(tcell.ColorFuchsia),
		syntax.Constant:       base.Foreground(tcell.ColorFuchsia),
		syntax.Char:           base.Foreground(tcell.ColorOlive),
		syntax.String:         base.Foreground(tcell.ColorOlive),
		syntax.VerbatimString: base.Foreground(tcell.ColorOlive),
		syntax.SpecialChar:    base.Foreground(tcell.ColorYellow),
		syntax.Preprocessor:   base.Foreground(tcell.ColorGreen),
		syntax.Import:         base.Foreground(tcell.ColorLime),
		syntax.Attribute:      base.Foreground(tcell.ColorTeal),
		syntax.Comment:        base.Foreground(tcell.ColorGray),
		syntax.Documentation:  base.Foreground(tcell.ColorGray).Italic(true),
		syntax.Information:    base.Foreground(tcell.ColorAqua),
		syntax.Warning:        base.Foreground(tcell.ColorYellow).Bold(true),
		syntax.Alert:          base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		syntax.Error:          base.Foreground(tcell.ColorRed).Underline(true),
	}
}
