package grammars

import "github.com/fivemoreminix/qsyntax/pkg/syntax"

func init() {
	Register(LangEntry{Name: "Go", Extensions: []string{".go"}, Load: loadGo})
}

const (
	goEscape = `\\(?:[abfnrtv\\'"]|x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{8}|[0-7]{3})`
	goFloat  = `(?:[0-9][0-9_]*\.[0-9_]*|\.[0-9][0-9_]*)(?:[eE][+-]?[0-9]+)?i?\b|[0-9][0-9_]*[eE][+-]?[0-9]+i?\b`
	goBaseN  = `0(?:[xX][0-9a-fA-F_]+|[bB][01_]+|[oO][0-7_]+)\b`
)

func loadGo(d *syntax.Definition) error {
	formatTable{
		{"Normal Text", syntax.Normal},
		{"Keyword", syntax.Keyword},
		{"Control Flow", syntax.ControlFlow},
		{"Data Type", syntax.DataType},
		{"Builtin Function", syntax.BuiltIn},
		{"Constant", syntax.Constant},
		{"Number", syntax.DecVal},
		{"Float", syntax.Float},
		{"Base-N", syntax.BaseN},
		{"String", syntax.String},
		{"Raw String", syntax.VerbatimString},
		{"Char", syntax.Char},
		{"Escape", syntax.SpecialChar},
		{"Comment", syntax.Comment},
		{"Symbol", syntax.Operator},
		{"Error", syntax.Error},
	}.addTo(d)

	d.AddKeywordList(syntax.NewKeywordList("keywords", []string{
		"chan", "const", "defer", "func", "go", "import", "interface", "map",
		"package", "range", "select", "struct", "type", "var",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("controlflow", []string{
		"break", "case", "continue", "default", "else", "fallthrough", "for",
		"goto", "if", "return", "switch",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("types", []string{
		"any", "bool", "byte", "comparable", "complex128", "complex64", "error",
		"float32", "float64", "int", "int16", "int32", "int64", "int8", "rune",
		"string", "uint", "uint16", "uint32", "uint64", "uint8", "uintptr",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("builtins", []string{
		"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
		"len", "make", "max", "min", "new", "panic", "print", "println", "real",
		"recover",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("constants", []string{
		"false", "iota", "nil", "true",
	}, nil))

	d.AddContext(&syntax.Context{Name: "Normal", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		keyword("keywords", "Keyword"),
		keyword("controlflow", "Control Flow"),
		keyword("types", "Data Type"),
		keyword("builtins", "Builtin Function"),
		keyword("constants", "Constant"),
		identifier(),
		regExpr(goFloat, "Float", ""),
		regExpr(goBaseN, "Base-N", ""),
		integer("Number"),
		detect2Chars('/', '/', "Comment", "LineComment"),
		detect2Chars('/', '*', "Comment", "BlockComment"),
		detectChar('"', "String", "String"),
		detectChar('`', "Raw String", "RawString"),
		detectChar('\'', "Char", "Char"),
		anyChar("+-*/%&|^<>=!:.,;()[]{}~", "Symbol"),
	}})
	d.AddContext(&syntax.Context{Name: "String", Attribute: "String", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(goEscape, "Escape", ""),
		regExpr(`\\.`, "Error", ""),
		detectChar('"', "String", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "RawString", Attribute: "Raw String", Rules: []*syntax.Rule{
		detectChar('`', "Raw String", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "Char", Attribute: "Char", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(goEscape, "Escape", ""),
		detectChar('\'', "Char", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "LineComment", Attribute: "Comment", LineEndContext: "#pop", Rules: []*syntax.Rule{
		spaces(),
		includeRules("##Alerts"),
		identifier(),
	}})
	d.AddContext(&syntax.Context{Name: "BlockComment", Attribute: "Comment", Rules: []*syntax.Rule{
		spaces(),
		detect2Chars('*', '/', "Comment", "#pop"),
		includeRules("##Alerts"),
		identifier(),
	}})
	return nil
}
