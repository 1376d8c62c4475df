package grammars

import (
	"testing"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type highlightedLine struct {
	spans []syntax.Span
	state syntax.State
}

// highlightLines runs the named definition over lines, feeding each line the
// state of the one before.
func highlightLines(t *testing.T, name string, lines ...string) (*syntax.Definition, []highlightedLine) {
	t.Helper()
	diags := &syntax.Collector{}
	repo := NewRepository(syntax.WithReporter(diags))
	def := repo.DefinitionForName(name)
	require.NotNil(t, def)
	h := syntax.NewHighlighter(def, nil)

	var state syntax.State
	out := make([]highlightedLine, 0, len(lines))
	for _, text := range lines {
		var spans []syntax.Span
		state = h.HighlightLine(text, state, func(s syntax.Span) {
			spans = append(spans, s)
		})
		out = append(out, highlightedLine{spans: spans, state: state})
	}
	require.Empty(t, diags.Diagnostics)
	return def, out
}

func formatAt(spans []syntax.Span, offset int) syntax.Format {
	for _, s := range spans {
		if offset >= s.Offset && offset < s.End() {
			return s.Format
		}
	}
	return syntax.Format{Name: "<none>"}
}

func stackDepth(s syntax.State) int {
	if s.IsEmpty() {
		return 0
	}
	return s.Data().Size()
}

func TestGoLine(t *testing.T) {
	def, lines := highlightLines(t, "Go", `x := "a\n" // TODO: fix`)
	f := def.Format
	alert := syntax.Format{Name: "Alert Level 2", Style: syntax.Warning}

	want := []syntax.Span{
		{Offset: 0, Length: 2, Format: f("Normal Text")},
		{Offset: 2, Length: 2, Format: f("Symbol")},
		{Offset: 4, Length: 1, Format: f("Normal Text")},
		{Offset: 5, Length: 2, Format: f("String")},
		{Offset: 7, Length: 2, Format: f("Escape")},
		{Offset: 9, Length: 1, Format: f("String")},
		{Offset: 10, Length: 1, Format: f("Normal Text")},
		{Offset: 11, Length: 3, Format: f("Comment")},
		{Offset: 14, Length: 4, Format: alert},
		{Offset: 18, Length: 5, Format: f("Comment")},
	}
	if diff := cmp.Diff(want, lines[0].spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, stackDepth(lines[0].state))
}

func TestGoKeywordsAndNumbers(t *testing.T) {
	def, lines := highlightLines(t, "Go", "for i := range 0x1F { return len(s) + 2.5 }")
	f := def.Format
	spans := lines[0].spans

	assert.Equal(t, syntax.ControlFlow, formatAt(spans, 0).Style)
	assert.Equal(t, f("Normal Text"), formatAt(spans, 4))
	assert.Equal(t, f("Keyword"), formatAt(spans, 9))
	assert.Equal(t, f("Base-N"), formatAt(spans, 15))
	assert.Equal(t, f("Control Flow"), formatAt(spans, 22))
	assert.Equal(t, f("Builtin Function"), formatAt(spans, 29))
	assert.Equal(t, f("Float"), formatAt(spans, 38))
}

func TestGoBlockComment(t *testing.T) {
	def, lines := highlightLines(t, "Go",
		"a /* NOTE",
		"",
		"still */ nil",
	)
	f := def.Format

	assert.Equal(t, 2, stackDepth(lines[0].state))
	assert.Equal(t, syntax.Information, formatAt(lines[0].spans, 5).Style)
	assert.True(t, lines[1].state.Equal(lines[0].state))
	assert.Empty(t, lines[1].spans)
	assert.Equal(t, f("Comment"), formatAt(lines[2].spans, 0))
	assert.Equal(t, f("Constant"), formatAt(lines[2].spans, 9))
	assert.Equal(t, 1, stackDepth(lines[2].state))
}

func TestGoRawStringSpansLines(t *testing.T) {
	def, lines := highlightLines(t, "Go",
		"s := `first",
		"// not a comment",
		"last` + x",
	)
	f := def.Format

	assert.Equal(t, []syntax.Span{{Offset: 0, Length: 16, Format: f("Raw String")}}, lines[1].spans)
	assert.Equal(t, f("Raw String"), formatAt(lines[2].spans, 4))
	assert.Equal(t, f("Symbol"), formatAt(lines[2].spans, 6))
	assert.Equal(t, 1, stackDepth(lines[2].state))
}

func TestCOutscopedBlocks(t *testing.T) {
	def, lines := highlightLines(t, "C",
		"#if 0",
		"#ifdef X",
		"#endif",
		"int x; // FIXME",
		"#endif",
		"size_t n = 0x1F;",
	)
	f := def.Format

	depths := make([]int, len(lines))
	for i, l := range lines {
		depths[i] = stackDepth(l.state)
	}
	assert.Equal(t, []int{2, 3, 2, 2, 1, 1}, depths)

	assert.Equal(t, f("Preprocessor"), formatAt(lines[0].spans, 0))
	assert.Equal(t, f("Comment"), formatAt(lines[3].spans, 0))
	assert.Equal(t, f("Alert"), formatAt(lines[3].spans, 10))
	assert.Equal(t, f("Preprocessor"), formatAt(lines[4].spans, 0))
	assert.Equal(t, f("Data Type"), formatAt(lines[5].spans, 0))
	assert.Equal(t, f("Hex"), formatAt(lines[5].spans, 11))
	assert.Equal(t, f("Symbol"), formatAt(lines[5].spans, 15))
}

func TestCInclude(t *testing.T) {
	def, lines := highlightLines(t, "C", `#include <stdio.h> // io`, `  #define N 4`)
	f := def.Format

	assert.Equal(t, f("Preprocessor"), formatAt(lines[0].spans, 0))
	assert.Equal(t, f("Prep. Lib"), formatAt(lines[0].spans, 9))
	assert.Equal(t, f("Comment"), formatAt(lines[0].spans, 19))
	assert.Equal(t, 1, stackDepth(lines[0].state))

	assert.Equal(t, f("Preprocessor"), formatAt(lines[1].spans, 2))
	assert.Equal(t, f("Preprocessor"), formatAt(lines[1].spans, 12))
	assert.Equal(t, 1, stackDepth(lines[1].state))
}

func TestJSONNesting(t *testing.T) {
	def, lines := highlightLines(t, "JSON",
		`{`,
		`  "a": [1, true],`,
		`  "b": nul`,
		`}`,
	)
	f := def.Format

	depths := make([]int, len(lines))
	for i, l := range lines {
		depths[i] = stackDepth(l.state)
	}
	assert.Equal(t, []int{2, 2, 3, 1}, depths)

	second := lines[1].spans
	assert.Equal(t, f("Key"), formatAt(second, 2))
	assert.Equal(t, f("Key"), formatAt(second, 3))
	assert.Equal(t, f("Separator"), formatAt(second, 5))
	assert.Equal(t, f("Separator"), formatAt(second, 7))
	assert.Equal(t, f("Number"), formatAt(second, 8))
	assert.Equal(t, f("Constant"), formatAt(second, 11))
	assert.Equal(t, f("Separator"), formatAt(second, 16))

	assert.Equal(t, f("Error"), formatAt(lines[2].spans, 7))
	assert.Equal(t, f("Separator"), formatAt(lines[3].spans, 0))
}
