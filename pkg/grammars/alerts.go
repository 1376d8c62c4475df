package grammars

import "github.com/fivemoreminix/qsyntax/pkg/syntax"

// Alerts highlights marker words such as TODO inside comments. Other
// definitions pull it in with IncludeRules "##Alerts" or through the
// "alerts##Alerts" keyword list.
func init() {
	Register(LangEntry{Name: "Alerts", Load: loadAlerts})
}

func loadAlerts(d *syntax.Definition) error {
	formatTable{
		{"Normal Text", syntax.Normal},
		{"Alert Level 1", syntax.Alert},
		{"Alert Level 2", syntax.Warning},
		{"Alert Level 3", syntax.Information},
	}.addTo(d)

	d.AddKeywordList(syntax.NewKeywordList("alerts_hi", []string{
		"ALERT", "ATTENTION", "DANGER", "HACK", "SECURITY",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("alerts_mid", []string{
		"BUG", "CAUTION", "DEPRECATED", "FIXME", "NOLINT", "TASK", "TBD", "TODO", "WARNING",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("alerts_lo", []string{
		"NOTE", "NOTICE", "TEST", "TESTING",
	}, nil))
	d.AddKeywordList(syntax.NewKeywordList("alerts", nil, []string{
		"alerts_lo", "alerts_mid", "alerts_hi",
	}))

	d.AddContext(&syntax.Context{Name: "Normal Text", Attribute: "Normal Text", Rules: []*syntax.Rule{
		keyword("alerts_hi", "Alert Level 1"),
		keyword("alerts_mid", "Alert Level 2"),
		keyword("alerts_lo", "Alert Level 3"),
	}})
	return nil
}
