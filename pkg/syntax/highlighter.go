package syntax

// maxSwitchesPerOffset bounds context switches that consume no text, such
// as fallthroughs and lookaheads, at one position or at the end of a line.
const maxSwitchesPerOffset = 1024

// A Span is a run of text in one format. Offset and Length count runes.
type Span struct {
	Offset int
	Length int
	Format Format
}

func (s Span) End() int { return s.Offset + s.Length }

// A Highlighter tokenizes text line by line with one Definition. It holds no
// per-document data: the State returned for a line is what the next line is
// highlighted with.
type Highlighter struct {
	def      *Definition
	reporter Reporter
}

// NewHighlighter loads def if necessary. reporter may be nil to use the
// reporter of def.
func NewHighlighter(def *Definition, reporter Reporter) *Highlighter {
	def.Load()
	if reporter == nil {
		reporter = reporterOf(def)
	}
	return &Highlighter{def: def, reporter: reporter}
}

func (h *Highlighter) Definition() *Definition { return h.def }

// HighlightLine highlights text, a line without its delimiter, starting in
// state. Every rune of text is covered by exactly one emitted span, in
// order, with adjacent spans of the same format merged. state is not
// modified; the state at the end of the line is returned.
//
// An empty or stale state starts over in the initial context.
func (h *Highlighter) HighlightLine(text string, state State, emit func(Span)) State {
	if !h.def.IsValid() {
		if text != "" && emit != nil {
			emit(Span{Length: len([]rune(text))})
		}
		return State{}
	}

	var d *StateData
	if state.IsValidFor(h.def) {
		d = state.Detach()
	} else {
		d = state.Reset(h.def)
	}

	if text == "" {
		h.switchRepeatedly(d, emptyLineSwitch)
		return state
	}

	if emit == nil {
		emit = func(Span) {}
	}
	spans := spanWriter{emit: emit}

	l := newLine(text, h.def.wordDelimiters)
	offset := 0
	idle := 0 // Consecutive switches that did not consume text
	for offset < len(l.text) {
		ctx := d.TopContext()
		captures := d.TopCaptures()

		rule, length, groups := h.matchRules(ctx, l, offset, captures, nil)
		switch {
		case rule != nil && rule.LookAhead:
			h.switchContext(d, rule.ctxSwitch, groups)
			idle++
		case rule != nil:
			format := ctx.format
			if rule.hasFormat {
				format = rule.format
			}
			spans.add(offset, length, format)
			offset += length
			h.switchContext(d, rule.ctxSwitch, groups)
			idle = 0
		case !ctx.fallthroughSwitch.IsStay():
			h.switchContext(d, ctx.fallthroughSwitch, nil)
			idle++
		default:
			spans.add(offset, 1, ctx.format)
			offset++
			idle = 0
		}

		if idle > maxSwitchesPerOffset {
			spans.add(offset, 1, d.TopContext().format)
			offset++
			idle = 0
		}
	}
	spans.flush()

	h.switchRepeatedly(d, (*Context).LineEnd)
	return state
}

// matchRules returns the first rule of ctx, with IncludeRules expanded in
// place, that matches at offset.
func (h *Highlighter) matchRules(ctx *Context, l *line, offset int, captures []string, including []*Context) (*Rule, int, []string) {
	for _, c := range including {
		if c == ctx {
			return nil, 0, nil
		}
	}
	for _, rule := range ctx.Rules {
		if rule.Kind == IncludeRules {
			if rule.include == nil {
				continue
			}
			if r, n, groups := h.matchRules(rule.include, l, offset, captures, append(including, ctx)); r != nil {
				return r, n, groups
			}
			continue
		}

		if rule.LookAhead && rule.ctxSwitch.IsStay() {
			continue
		}
		if n, groups, ok := rule.match(l, offset, captures); ok && (n > 0 || rule.LookAhead) {
			return rule, n, groups
		}
	}
	return nil, 0, nil
}

// switchRepeatedly applies the switch selected by which for the top context
// until it is a stay or a pop fails.
func (h *Highlighter) switchRepeatedly(d *StateData, which func(*Context) ContextSwitch) {
	for i := 0; i < maxSwitchesPerOffset; i++ {
		cs := which(d.TopContext())
		if cs.IsStay() || !h.switchContext(d, cs, nil) {
			return
		}
	}
}

// emptyLineSwitch is the line-empty switch of ctx, or its line-end switch
// if it has none.
func emptyLineSwitch(ctx *Context) ContextSwitch {
	if cs := ctx.LineEmpty(); !cs.IsStay() {
		return cs
	}
	return ctx.LineEnd()
}

// switchContext pops, then pushes. The push happens even if the pops hit
// the initial context; false is returned in that case.
func (h *Highlighter) switchContext(d *StateData, cs ContextSwitch, captures []string) bool {
	if cs.popCount <= 0 && cs.context == nil {
		return true
	}
	ok := d.Pop(cs.popCount)
	if !ok {
		warn(h.reporter, PopPastRoot, h.def, cs.String(), "context switch pops the initial context")
	}
	if cs.context != nil {
		if !cs.context.Dynamic {
			captures = nil
		}
		d.Push(cs.context, captures)
	}
	return ok
}

type spanWriter struct {
	emit    func(Span)
	pending Span
	started bool
}

func (w *spanWriter) add(offset, length int, format Format) {
	if length <= 0 {
		return
	}
	if w.started && w.pending.Format == format && w.pending.End() == offset {
		w.pending.Length += length
		return
	}
	w.flush()
	w.pending = Span{Offset: offset, Length: length, Format: format}
	w.started = true
}

func (w *spanWriter) flush() {
	if w.started {
		w.emit(w.pending)
		w.started = false
	}
}
