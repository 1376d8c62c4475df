package grammars

import "github.com/fivemoreminix/qsyntax/pkg/syntax"

// Shorthands for the rules the built-in definitions are made of. attr and
// ctx are a format name and a context switch directive; either may be empty.

func detectChar(c rune, attr, ctx string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.DetectChar, Char: c, Attribute: attr, Context: ctx}
}

func detect2Chars(c, c1 rune, attr, ctx string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.Detect2Chars, Char: c, Char1: c1, Attribute: attr, Context: ctx}
}

func anyChar(chars, attr string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.AnyChar, String: chars, Attribute: attr}
}

func regExpr(pattern, attr, ctx string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.RegExpr, String: pattern, Attribute: attr, Context: ctx}
}

func keyword(list, attr string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.KeywordRule, String: list, Attribute: attr}
}

func includeRules(target string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.IncludeRules, String: target}
}

func firstNonSpace(r *syntax.Rule) *syntax.Rule {
	r.FirstNonSpace = true
	return r
}

func lookAhead(r *syntax.Rule) *syntax.Rule {
	r.LookAhead = true
	return r
}

func spaces() *syntax.Rule { return &syntax.Rule{Kind: syntax.DetectSpaces} }

func identifier() *syntax.Rule { return &syntax.Rule{Kind: syntax.DetectIdentifier} }

func integer(attr string) *syntax.Rule {
	return &syntax.Rule{Kind: syntax.Int, Attribute: attr}
}

type formatTable []struct {
	name  string
	style syntax.TextStyle
}

func (t formatTable) addTo(d *syntax.Definition) {
	for _, f := range t {
		d.AddFormat(f.name, f.style)
	}
}
