package syntax

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestLanguage(d *Definition) error {
	d.AddFormat("Normal Text", Normal)
	d.AddFormat("Keyword", Keyword)
	d.AddFormat("String", String)
	d.AddFormat("Comment", Comment)
	d.AddFormat("Number", DecVal)
	d.AddFormat("Heredoc", VerbatimString)
	d.AddFormat("Attribute", Attribute)

	d.AddKeywordList(NewKeywordList("keywords", []string{"if", "else", "return"}, nil))

	d.AddContext(&Context{Name: "Normal", Attribute: "Normal Text", Rules: []*Rule{
		{Kind: KeywordRule, String: "keywords", Attribute: "Keyword"},
		{Kind: DetectChar, Char: '"', Attribute: "String", Context: "String"},
		{Kind: Detect2Chars, Char: '/', Char1: '*', Attribute: "Comment", Context: "Comment"},
		{Kind: Detect2Chars, Char: '/', Char1: '/', Attribute: "Comment", Context: "LineComment"},
		{Kind: RegExpr, String: `<<(\w+)`, Attribute: "Heredoc", Context: "Heredoc"},
		{Kind: RegExpr, String: `[0-9]`, LookAhead: true, Context: "Digits"},
		{Kind: DetectChar, Char: '@', Attribute: "Attribute", Context: "Annotation"},
		{Kind: DetectChar, Char: ')', Context: "#pop"},
	}})
	d.AddContext(&Context{Name: "String", Attribute: "String", LineEndContext: "#pop", Rules: []*Rule{
		{Kind: DetectChar, Char: '"', Context: "#pop"},
	}})
	d.AddContext(&Context{Name: "Comment", Attribute: "Comment", Rules: []*Rule{
		{Kind: Detect2Chars, Char: '*', Char1: '/', Context: "#pop"},
	}})
	d.AddContext(&Context{Name: "LineComment", Attribute: "Comment", LineEndContext: "#pop"})
	d.AddContext(&Context{Name: "Heredoc", Attribute: "Heredoc", Dynamic: true, Rules: []*Rule{
		{Kind: StringDetect, String: "%1", Dynamic: true, Column: 1, Context: "#pop"},
	}})
	d.AddContext(&Context{Name: "Digits", Rules: []*Rule{
		{Kind: RegExpr, String: `[0-9]+`, Attribute: "Number", Context: "#pop"},
	}})
	d.AddContext(&Context{Name: "Annotation", Attribute: "Attribute", FallthroughContext: "#pop", Rules: []*Rule{
		{Kind: DetectIdentifier},
	}})
	return nil
}

func newTestHighlighter(t *testing.T) (*Highlighter, *Collector) {
	t.Helper()
	diags := &Collector{}
	repo := NewRepository(WithReporter(diags))
	def := repo.Register("Test", loadTestLanguage)
	h := NewHighlighter(def, nil)
	require.True(t, def.IsValid())
	require.Empty(t, diags.Diagnostics)
	return h, diags
}

func highlight(h *Highlighter, text string, state State) ([]Span, State) {
	var spans []Span
	next := h.HighlightLine(text, state, func(s Span) {
		spans = append(spans, s)
	})
	return spans, next
}

func stackOf(s State) []string {
	if s.IsEmpty() {
		return nil
	}
	return contextNames(s.Data())
}

func TestHighlightKeywordsAndNumbers(t *testing.T) {
	h, _ := newTestHighlighter(t)
	f := h.Definition().Format

	spans, state := highlight(h, "if x return 42", State{})
	want := []Span{
		{Offset: 0, Length: 2, Format: f("Keyword")},
		{Offset: 2, Length: 3, Format: f("Normal Text")},
		{Offset: 5, Length: 6, Format: f("Keyword")},
		{Offset: 11, Length: 1, Format: f("Normal Text")},
		{Offset: 12, Length: 2, Format: f("Number")},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	// Keywords only match whole words.
	spans, _ = highlight(h, "iffy", State{})
	assert.Equal(t, []Span{{Offset: 0, Length: 4, Format: f("Normal Text")}}, spans)
}

func TestHighlightMultiLineComment(t *testing.T) {
	h, _ := newTestHighlighter(t)
	f := h.Definition().Format

	spans, state := highlight(h, "a /* b", State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 2, Format: f("Normal Text")},
		{Offset: 2, Length: 4, Format: f("Comment")},
	}, spans)
	assert.Equal(t, []string{"Normal", "Comment"}, stackOf(state))

	inside, state2 := highlight(h, "still", state)
	assert.Equal(t, []Span{{Offset: 0, Length: 5, Format: f("Comment")}}, inside)
	assert.True(t, state.Equal(state2))

	spans, state3 := highlight(h, "c */ d", state2)
	assert.Equal(t, []Span{
		{Offset: 0, Length: 4, Format: f("Comment")},
		{Offset: 4, Length: 2, Format: f("Normal Text")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state3))

	var fresh State
	fresh.Reset(h.Definition())
	assert.True(t, state3.Equal(fresh))
	assert.Equal(t, fresh.Hash(), state3.Hash())

	// The input states were not touched.
	assert.Equal(t, []string{"Normal", "Comment"}, stackOf(state))
	assert.Equal(t, []string{"Normal", "Comment"}, stackOf(state2))
}

func TestHighlightLineEnd(t *testing.T) {
	h, _ := newTestHighlighter(t)
	f := h.Definition().Format

	spans, state := highlight(h, `x "open`, State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 2, Format: f("Normal Text")},
		{Offset: 2, Length: 5, Format: f("String")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	spans, state = highlight(h, "1 // note", State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 1, Format: f("Number")},
		{Offset: 1, Length: 1, Format: f("Normal Text")},
		{Offset: 2, Length: 7, Format: f("Comment")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))
}

func TestHighlightDynamicCaptures(t *testing.T) {
	h, _ := newTestHighlighter(t)
	f := h.Definition().Format

	spans, eof := highlight(h, "<<EOF", State{})
	assert.Equal(t, []Span{{Offset: 0, Length: 5, Format: f("Heredoc")}}, spans)
	assert.Equal(t, []string{"Normal", "Heredoc"}, stackOf(eof))
	assert.Equal(t, []string{"EOF"}, eof.Data().TopCaptures())

	_, end := highlight(h, "<<END", State{})
	assert.False(t, eof.Equal(end), "captures are part of the state")

	spans, state := highlight(h, "END EOF", eof)
	assert.Equal(t, []Span{{Offset: 0, Length: 7, Format: f("Heredoc")}}, spans)
	assert.True(t, state.Equal(eof))

	spans, state = highlight(h, "EOF if", state)
	assert.Equal(t, []Span{
		{Offset: 0, Length: 3, Format: f("Heredoc")},
		{Offset: 3, Length: 1, Format: f("Normal Text")},
		{Offset: 4, Length: 2, Format: f("Keyword")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))
}

func loadShellHeredoc(d *Definition) error {
	d.AddFormat("Normal Text", Normal)
	d.AddFormat("Heredoc", VerbatimString)
	d.AddContext(&Context{Name: "Normal", Attribute: "Normal Text", Rules: []*Rule{
		{Kind: RegExpr, String: `<<(\w+)`, Attribute: "Heredoc", Context: "Heredoc"},
	}})
	d.AddContext(&Context{Name: "Heredoc", Attribute: "Heredoc", Dynamic: true, Rules: []*Rule{
		{Kind: RegExpr, String: `%1;`, Dynamic: true, Context: "#pop"},
	}})
	return nil
}

func TestHighlightSharedDefinitionConcurrently(t *testing.T) {
	diags := &Collector{}
	repo := NewRepository(WithReporter(diags))
	def := repo.Register("Heredoc", loadShellHeredoc)
	require.Empty(t, repo.LoadAll())
	require.True(t, def.IsValid())

	const goroutines = 8
	stacks := make([][][]string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := NewHighlighter(def, nil)
			for j := 0; j < 20; j++ {
				delim := fmt.Sprintf("D%d", j%5)
				_, open := highlight(h, "<<"+delim+" x", State{})
				_, closed := highlight(h, "y "+delim+"; z", open)
				stacks[i] = append(stacks[i], stackOf(open), stackOf(closed))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		for j := 0; j < len(stacks[i]); j += 2 {
			assert.Equal(t, []string{"Normal", "Heredoc"}, stacks[i][j])
			assert.Equal(t, []string{"Normal"}, stacks[i][j+1])
		}
	}
	assert.Empty(t, diags.Diagnostics)
}

func TestHighlightDynamicPatternCacheIsBounded(t *testing.T) {
	def := NewDefinition("Heredoc")
	require.NoError(t, loadShellHeredoc(def))
	h := NewHighlighter(def, nil)
	require.True(t, def.IsValid())

	for i := 0; i < 3*maxDynamicPatterns; i++ {
		delim := fmt.Sprintf("END%d", i)
		_, open := highlight(h, "<<"+delim, State{})
		_, closed := highlight(h, delim+";", open)
		require.Equal(t, []string{"Normal"}, stackOf(closed), delim)
	}

	rule := def.Context("Heredoc").Rules[0]
	rule.dynamicMu.Lock()
	defer rule.dynamicMu.Unlock()
	assert.LessOrEqual(t, len(rule.dynamicRe), maxDynamicPatterns)
	assert.NotEmpty(t, rule.dynamicRe)
}

func TestHighlightLookAheadAndFallthrough(t *testing.T) {
	h, _ := newTestHighlighter(t)
	f := h.Definition().Format

	spans, state := highlight(h, "ab12cd", State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 2, Format: f("Normal Text")},
		{Offset: 2, Length: 2, Format: f("Number")},
		{Offset: 4, Length: 2, Format: f("Normal Text")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	spans, state = highlight(h, "@foo bar", State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 4, Format: f("Attribute")},
		{Offset: 4, Length: 4, Format: f("Normal Text")},
	}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))
}

func TestHighlightPopPastInitialContext(t *testing.T) {
	h, diags := newTestHighlighter(t)
	f := h.Definition().Format

	spans, state := highlight(h, "))", State{})
	assert.Equal(t, []Span{{Offset: 0, Length: 2, Format: f("Normal Text")}}, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))
	assert.True(t, diags.Has(PopPastRoot, "#pop"))
}

func TestHighlightEmptyLine(t *testing.T) {
	diags := &Collector{}
	def := NewDefinition("Blocks")
	def.SetReporter(diags)
	def.AddContext(&Context{Name: "Normal", Rules: []*Rule{
		{Kind: DetectChar, Char: '{', Context: "Block"},
		{Kind: DetectChar, Char: '[', Context: "List"},
	}})
	def.AddContext(&Context{Name: "Block", LineEmptyContext: "#pop"})
	def.AddContext(&Context{Name: "List", LineEndContext: "#pop"})
	h := NewHighlighter(def, nil)

	spans, block := highlight(h, "{", State{})
	assert.Len(t, spans, 1)
	assert.Equal(t, []string{"Normal", "Block"}, stackOf(block))

	_, kept := highlight(h, "x", block)
	assert.Equal(t, []string{"Normal", "Block"}, stackOf(kept))

	spans, state := highlight(h, "", block)
	assert.Empty(t, spans)
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	// List has no line-empty switch, so its line-end switch pops it; Block
	// then takes its own line-empty switch.
	_, state = highlight(h, "", highlightState(h, "{["))
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	_, state = highlight(h, "", highlightState(h, "[{["))
	assert.Equal(t, []string{"Normal"}, stackOf(state))

	_, state = highlight(h, "", State{})
	assert.Equal(t, []string{"Normal"}, stackOf(state))
	assert.Empty(t, diags.Diagnostics)
}

func highlightState(h *Highlighter, text string) State {
	var s State
	d := s.Reset(h.Definition())
	for _, c := range text {
		switch c {
		case '{':
			d.Push(h.Definition().Context("Block"), nil)
		case '[':
			d.Push(h.Definition().Context("List"), nil)
		}
	}
	return s
}

func TestHighlightIncludeRulesAcrossDefinitions(t *testing.T) {
	diags := &Collector{}
	repo := NewRepository(WithReporter(diags))
	repo.Register("Notes", func(d *Definition) error {
		d.AddFormat("Alert", Alert)
		d.AddKeywordList(NewKeywordList("alerts", []string{"TODO", "FIXME"}, nil))
		d.AddContext(&Context{Name: "Normal", Rules: []*Rule{
			{Kind: KeywordRule, String: "alerts", Attribute: "Alert"},
		}})
		return nil
	})
	outer := repo.Register("Outer", func(d *Definition) error {
		d.AddFormat("Comment", Comment)
		d.AddKeywordList(NewKeywordList("marks", []string{"XXX"}, []string{"alerts##Notes"}))
		d.AddContext(&Context{Name: "Normal", Attribute: "Comment", Rules: []*Rule{
			{Kind: IncludeRules, String: "##Notes"},
			{Kind: IncludeRules, String: "Normal"},
			{Kind: KeywordRule, String: "marks", Attribute: "Comment", Insensitive: true},
		}})
		return nil
	})
	h := NewHighlighter(outer, nil)

	spans, _ := highlight(h, "x TODO", State{})
	assert.Equal(t, []Span{
		{Offset: 0, Length: 2, Format: outer.Format("Comment")},
		{Offset: 2, Length: 4, Format: Format{Name: "Alert", Style: Alert}},
	}, spans)
	assert.True(t, outer.KeywordList("marks").Contains("fixme", CaseInsensitive))
	assert.Empty(t, diags.Diagnostics)
}

func TestHighlightInvalidDefinition(t *testing.T) {
	diags := &Collector{}
	repo := NewRepository(WithReporter(diags))
	def := repo.Register("Broken", func(*Definition) error {
		return errors.New("no contexts")
	})
	h := NewHighlighter(def, nil)

	spans, state := highlight(h, "héllo", State{})
	assert.Equal(t, []Span{{Offset: 0, Length: 5}}, spans)
	assert.True(t, state.IsEmpty())
	assert.True(t, diags.Has(LoadFailed, "Broken"))
}

func TestHighlightStaleState(t *testing.T) {
	h, _ := newTestHighlighter(t)
	other, _ := newTestHighlighter(t)

	_, comment := highlight(other, "/*", State{})
	require.Equal(t, []string{"Normal", "Comment"}, stackOf(comment))

	spans, state := highlight(h, "x", comment)
	assert.Equal(t, []Span{{Offset: 0, Length: 1, Format: h.Definition().Format("Normal Text")}}, spans)
	assert.True(t, state.IsValidFor(h.Definition()))
	assert.Equal(t, []string{"Normal"}, stackOf(state))
}

func TestHighlightEndlessSwitching(t *testing.T) {
	def := NewDefinition("Loop")
	def.SetReporter(&Collector{})
	def.AddContext(&Context{Name: "A", FallthroughContext: "B", LineEndContext: "B"})
	def.AddContext(&Context{Name: "B", FallthroughContext: "A", LineEndContext: "A"})
	h := NewHighlighter(def, nil)

	spans, state := highlight(h, "ab", State{})
	require.NotEmpty(t, spans)
	covered := 0
	for _, s := range spans {
		assert.Equal(t, covered, s.Offset)
		covered = s.End()
	}
	assert.Equal(t, 2, covered)
	assert.False(t, state.IsEmpty())
}
