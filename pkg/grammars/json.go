package grammars

import "github.com/fivemoreminix/qsyntax/pkg/syntax"

func init() {
	Register(LangEntry{
		Name:       "JSON",
		Extensions: []string{".json", ".geojson"},
		Filenames:  []string{".babelrc", ".eslintrc"},
		Load:       loadJSON,
	})
}

const jsonNumber = `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?\b`

func loadJSON(d *syntax.Definition) error {
	formatTable{
		{"Normal Text", syntax.Normal},
		{"Separator", syntax.Operator},
		{"Key", syntax.DataType},
		{"String", syntax.String},
		{"Number", syntax.DecVal},
		{"Constant", syntax.Constant},
		{"Escape", syntax.SpecialChar},
		{"Error", syntax.Error},
	}.addTo(d)

	d.AddKeywordList(syntax.NewKeywordList("constants", []string{"false", "null", "true"}, nil))

	d.AddContext(&syntax.Context{Name: "Normal", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		includeRules("Value"),
	}})
	d.AddContext(&syntax.Context{Name: "Object", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		detectChar('"', "Key", "Key"),
		detectChar(':', "Separator", "ObjectValue"),
		detectChar(',', "Separator", ""),
		detectChar('}', "Separator", "#pop"),
		regExpr(`[^\s"]`, "Error", ""),
	}})
	d.AddContext(&syntax.Context{Name: "ObjectValue", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		detectChar(',', "Separator", "#pop"),
		lookAhead(detectChar('}', "", "#pop")),
		includeRules("Value"),
	}})
	d.AddContext(&syntax.Context{Name: "Array", Attribute: "Normal Text", Rules: []*syntax.Rule{
		spaces(),
		detectChar(']', "Separator", "#pop"),
		detectChar(',', "Separator", ""),
		includeRules("Value"),
	}})
	d.AddContext(&syntax.Context{Name: "Value", Attribute: "Normal Text", Rules: []*syntax.Rule{
		detectChar('"', "String", "String"),
		detectChar('{', "Separator", "Object"),
		detectChar('[', "Separator", "Array"),
		regExpr(jsonNumber, "Number", ""),
		keyword("constants", "Constant"),
		regExpr(`[^\s,\]}]`, "Error", ""),
	}})
	d.AddContext(&syntax.Context{Name: "Key", Attribute: "Key", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(`\\(?:["\\/bfnrt]|u[0-9a-fA-F]{4})`, "Escape", ""),
		detectChar('"', "Key", "#pop"),
	}})
	d.AddContext(&syntax.Context{Name: "String", Attribute: "String", LineEndContext: "#pop", Rules: []*syntax.Rule{
		regExpr(`\\(?:["\\/bfnrt]|u[0-9a-fA-F]{4})`, "Escape", ""),
		detectChar('"', "String", "#pop"),
	}})
	return nil
}
