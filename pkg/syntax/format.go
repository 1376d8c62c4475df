package syntax

import "strings"

// TextStyle is the default style a Format falls back on. A colorscheme only
// needs to know about these, not about every format of every definition.
type TextStyle uint8

const (
	Normal TextStyle = iota
	Keyword
	Function
	Variable
	ControlFlow
	Operator
	BuiltIn
	Extension
	Preprocessor
	Attribute
	Char
	SpecialChar
	String
	VerbatimString
	SpecialString
	Import
	DataType
	DecVal
	BaseN
	Float
	Constant
	Comment
	Documentation
	Annotation
	CommentVar
	RegionMarker
	Information
	Warning
	Alert
	Others
	Error

	textStyleCount
)

var textStyleNames = [textStyleCount]string{
	"Normal", "Keyword", "Function", "Variable", "ControlFlow", "Operator",
	"BuiltIn", "Extension", "Preprocessor", "Attribute", "Char", "SpecialChar",
	"String", "VerbatimString", "SpecialString", "Import", "DataType", "DecVal",
	"BaseN", "Float", "Constant", "Comment", "Documentation", "Annotation",
	"CommentVar", "RegionMarker", "Information", "Warning", "Alert", "Others",
	"Error",
}

func (s TextStyle) String() string {
	if s < textStyleCount {
		return textStyleNames[s]
	}
	return "Normal"
}

// ParseTextStyle looks a style up by its name, ignoring case. A "ds" prefix
// as used by Kate-style definitions is accepted.
func ParseTextStyle(name string) (TextStyle, bool) {
	name = strings.TrimPrefix(name, "ds")
	for i, n := range textStyleNames {
		if strings.EqualFold(n, name) {
			return TextStyle(i), true
		}
	}
	return Normal, false
}

// TextStyles returns every TextStyle in declaration order.
func TextStyles() []TextStyle {
	styles := make([]TextStyle, textStyleCount)
	for i := range styles {
		styles[i] = TextStyle(i)
	}
	return styles
}

// A Format is a named attribute of a definition, e.g. "Comment" or
// "String Char", together with the default style used to draw it.
type Format struct {
	Name  string
	Style TextStyle
}

// IsNormal reports whether text in this format needs no highlighting.
func (f Format) IsNormal() bool {
	return f.Style == Normal
}
