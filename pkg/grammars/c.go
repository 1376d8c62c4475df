package grammars

import "github.com/fivemoreminix/qsyntax/pkg/syntax"

func init() {
	Register(LangEntry{Name: "C", Extensions: []string{".c", ".h"}, Load: loadC})
}

const (
	cEscape = `\\(?:[abefnrtv\\'"?]|x[0-9a-fA-F]+|[0-7]{1,3}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{8})`
	cFloat  = `(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?[fFlL]?\b|[0-9]+[eE][+-]?[0-9]+[fFlL]?\b`
	cHex    = `0[xX][0-9a-fA-F]+[uUlL]*\b`
	cInt    = `[0-9]+[uUlL]*\b`
)

func loadC(d *syntax.Definition) error {
	formatTable{
		{"Normal Text", syntax.Normal},
		{"Keyword", syntax.Keyword},
		{"Control Flow", syntax.ControlFlow},
		{"Data Type", syntax.DataType},
		{"Decimal", syntax.DecVal},
		{"Float", syntax.Float},
		{"Hex", syntax.BaseN},
		{"String", syntax.String},
		{"Char", syntax.Char},
		{"Escape", syntax.SpecialChar},
		{"Comment", syntax.Comment},
		{"Alert", syntax.Alert},
		{"Preprocessor", syntax.Preprocessor},
		{"Prep. Lib", syntax.Import},
		{"Symbol", syntax.Operator},
	}.addTo(d)

	d.AddKeywordList(syntax.NewKeywordList("keywords", []string{
		"_Alignas", "_Alignof", "_Atomic", "_Generic", "_Noreturn",
		"_Static_assert", "_Thread_local", "auto", "const", "enum", "extern",
		"inline", "register", "restrict", "sizeof", "static", "struct",
		"typedef", "union", "volatile",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("controlflow", []string{
		"break", "case", "continue", "default", "do", "else", "for", "goto",
		"if", "return", "switch", "while",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("types", []string{
		"_Bool", "_Complex", "_Imaginary", "char", "double", "float", "int",
		"long", "short", "signed", "unsigned", "void",
	}, []string{"stdtypes"}))
	d.AddKeywordList(syntax.NewKeywordList("stdtypes", []string{
		"FILE", "bool", "int16_t", "int32_t", "int64_t", "int8_t", "intptr_t",
		"ptrdiff_t", "size_t", "ssize_t", "uint16_t", "uint32_t", "uint64_t",
		"uint8_t", "uintptr_t", "wchar_t",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("alerts", nil, []string{"alerts##Alerts"}))

	d.AddContext(&syntax.Context{Name: "Normal", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		firstNonSpace(regExpr(`#\s*if\s+0\b`, "Preprocessor", "Outscoped")),
		firstNonSpace(regExpr(`#\s*(?:include|import)\b`, "Preprocessor", "Include")),
		firstNonSpace(detectChar('#', "Preprocessor", "Preprocessor")),
		keyword("keywords", "Keyword"),
		keyword("controlflow", "Control Flow"),
		keyword("types", "Data Type"),
		identifier(),
		regExpr(cFloat, "Float", ""),
		regExpr(cHex, "Hex", ""),
		regExpr(cInt, "Decimal", ""),
		detect2Chars('/', '/', "Comment", "LineComment"),
		detect2Chars('/', '*', "Comment", "BlockComment"),
		detectChar('"', "String", "String"),
		detectChar('\'', "Char", "Char"),
		anyChar("+-*/%&|^<>=!?:.,;()[]{}~", "Symbol"),
	}})
	d.AddContext(&syntax.Context{Name: "String", Attribute: "String", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(cEscape, "Escape", ""),
		detectChar('"', "String", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "Char", Attribute: "Char", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(cEscape, "Escape", ""),
		detectChar('\'', "Char", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "LineComment", Attribute: "Comment", LineEndContext: "#pop", Rules: []*syntax.Rule{
		spaces(),
		keyword("alerts", "Alert"),
		identifier(),
	}})
	d.AddContext(&syntax.Context{Name: "BlockComment", Attribute: "Comment", Rules: []*syntax.Rule{
		spaces(),
		detect2Chars('*', '/', "Comment", "#pop"),
		keyword("alerts", "Alert"),
		identifier(),
	}})
	d.AddContext(&syntax.Context{Name: "Include", Attribute: "Preprocessor", LineEndContext: "#pop", Rules: []*syntax.Rule{
		spaces(),
		regExpr(`<[^>]*>|"[^"]*"`, "Prep. Lib", ""),
		detect2Chars('/', '/', "Comment", "#pop!LineComment"),
	}})
	d.AddContext(&syntax.Context{Name: "Preprocessor", Attribute: "Preprocessor", LineEndContext: "#pop", Rules: []*syntax.Rule{
		detect2Chars('/', '/', "Comment", "#pop!LineComment"),
		detect2Chars('/', '*', "Comment", "BlockComment"),
		detectChar('"', "String", "String"),
	}})

	// "#if 0" blocks are comments up to the matching #else, #elif or #endif.
	d.AddContext(&syntax.Context{Name: "Outscoped", Attribute: "Comment", Rules: []*syntax.Rule{
		spaces(),
		firstNonSpace(regExpr(`#\s*(?:else|elif|endif)\b`, "Preprocessor", "#pop")),
		firstNonSpace(regExpr(`#\s*if`, "Comment", "OutscopedNested")),
		keyword("alerts", "Alert"),
		identifier(),
	}})
	d.AddContext(&syntax.Context{Name: "OutscopedNested", Attribute: "Comment", Rules: []*syntax.Rule{
		spaces(),
		firstNonSpace(regExpr(`#\s*endif\b`, "Comment", "#pop")),
		firstNonSpace(regExpr(`#\s*if`, "Comment", "OutscopedNested")),
		keyword("alerts", "Alert"),
		identifier(),
	}})
	return nil
}
