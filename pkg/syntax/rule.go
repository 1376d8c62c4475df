package syntax

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/dlclark/regexp2"
)

type RuleKind uint8

const (
	DetectChar RuleKind = iota
	Detect2Chars
	AnyChar
	StringDetect
	WordDetect
	RegExpr
	KeywordRule
	DetectSpaces
	DetectIdentifier
	Int
	IncludeRules
)

var ruleKindNames = [...]string{
	"DetectChar", "Detect2Chars", "AnyChar", "StringDetect", "WordDetect",
	"RegExpr", "keyword", "DetectSpaces", "DetectIdentifier", "Int",
	"IncludeRules",
}

func (k RuleKind) String() string {
	if int(k) < len(ruleKindNames) {
		return ruleKindNames[k]
	}
	return "RuleKind(" + strconv.Itoa(int(k)) + ")"
}

// A Rule recognizes text at the current position of a line.
//
// String holds the kind specific argument: the string of StringDetect and
// WordDetect, the pattern of RegExpr, the list name of a keyword rule, the
// characters of AnyChar and the target of IncludeRules. Dynamic rules
// replace %1 to %9 in String with the captures of the current context, and
// DetectChar with Dynamic set matches the first character of capture Char-'0'.
type Rule struct {
	Kind      RuleKind
	Attribute string // Format of the matched text; empty means the context's
	Context   string // Context switch directive applied after a match

	Char, Char1 rune
	String      string

	Insensitive   bool
	Dynamic       bool
	LookAhead     bool // Switch context without consuming the match
	FirstNonSpace bool // Only match at the first non-space character
	Column        int  // Only match at this 1-based column; 0 is any

	def       *Definition
	format    Format
	hasFormat bool
	ctxSwitch ContextSwitch
	keywords  *KeywordList
	include   *Context
	re        *regexp2.Regexp

	dynamicMu sync.Mutex
	dynamicRe map[string]*regexp2.Regexp // Compiled per substituted pattern
}

func (r *Rule) Format() Format { return r.format }

func (r *Rule) ContextSwitch() ContextSwitch { return r.ctxSwitch }

// IncludedContext is the resolved target of an IncludeRules rule.
func (r *Rule) IncludedContext() *Context { return r.include }

func (r *Rule) resolve(ctx *Context) {
	d := r.def
	if r.Attribute != "" {
		r.format = d.Format(r.Attribute)
		r.hasFormat = true
	}
	r.ctxSwitch = ResolveContextSwitch(d, r.Context)

	switch r.Kind {
	case KeywordRule:
		r.keywords = d.KeywordList(r.String)
		if r.keywords == nil {
			warn(reporterOf(d), UnresolvedKeywordList, d, r.String, "unknown keyword list in context %s", ctx.Name)
		}
	case IncludeRules:
		r.include = ctx.resolveInclude(r.String)
	case RegExpr:
		if !r.Dynamic {
			re, err := r.compile(r.String)
			if err != nil {
				warn(reporterOf(d), InvalidPattern, d, r.String, "invalid regular expression: %v", err)
			}
			r.re = re
		}
	}
}

func (r *Rule) compile(pattern string) (*regexp2.Regexp, error) {
	opts := regexp2.None
	if r.Insensitive {
		opts |= regexp2.IgnoreCase
	}
	return regexp2.Compile(`\G(?:`+pattern+`)`, opts)
}

// line is the text of one line as seen by rules.
type line struct {
	text          []rune
	firstNonSpace int
	delimiters    string
}

func newLine(text string, delimiters string) *line {
	l := &line{text: []rune(text), delimiters: delimiters}
	for l.firstNonSpace < len(l.text) && unicode.IsSpace(l.text[l.firstNonSpace]) {
		l.firstNonSpace++
	}
	return l
}

func (l *line) isDelimiter(r rune) bool {
	return strings.ContainsRune(l.delimiters, r)
}

// atWordStart reports whether a word may start at offset.
func (l *line) atWordStart(offset int) bool {
	return offset == 0 || l.isDelimiter(l.text[offset-1])
}

func (l *line) atWordEnd(offset int) bool {
	return offset >= len(l.text) || l.isDelimiter(l.text[offset])
}

// match tries r at offset. It returns the number of runes matched and, for
// regular expressions, the captured groups. Only regular expressions can
// match zero runes.
func (r *Rule) match(l *line, offset int, captures []string) (int, []string, bool) {
	if r.FirstNonSpace && offset != l.firstNonSpace {
		return 0, nil, false
	}
	if r.Column > 0 && offset != r.Column-1 {
		return 0, nil, false
	}
	if r.Kind == RegExpr {
		return r.matchRegExpr(l, offset, captures)
	}
	n := r.matchText(l, offset, captures)
	return n, nil, n > 0
}

func (r *Rule) matchText(l *line, offset int, captures []string) int {
	text := l.text[offset:]
	switch r.Kind {
	case DetectChar:
		c := r.Char
		if r.Dynamic {
			c = dynamicChar(r.Char, captures)
		}
		if c != 0 && r.equalRune(text[0], c) {
			return 1
		}
	case Detect2Chars:
		if len(text) >= 2 && r.equalRune(text[0], r.Char) && r.equalRune(text[1], r.Char1) {
			return 2
		}
	case AnyChar:
		if strings.ContainsRune(r.String, text[0]) {
			return 1
		}
	case StringDetect:
		return r.matchString(text, r.substitute(captures, false))
	case WordDetect:
		if !l.atWordStart(offset) {
			return 0
		}
		if n := r.matchString(text, r.String); n > 0 && l.atWordEnd(offset+n) {
			return n
		}
	case KeywordRule:
		return r.matchKeyword(l, offset)
	case DetectSpaces:
		n := 0
		for n < len(text) && unicode.IsSpace(text[n]) {
			n++
		}
		return n
	case DetectIdentifier:
		if !unicode.IsLetter(text[0]) && text[0] != '_' {
			return 0
		}
		n := 1
		for n < len(text) && (unicode.IsLetter(text[n]) || unicode.IsDigit(text[n]) || text[n] == '_') {
			n++
		}
		return n
	case Int:
		if !l.atWordStart(offset) {
			return 0
		}
		n := 0
		for n < len(text) && text[n] >= '0' && text[n] <= '9' {
			n++
		}
		return n
	}
	return 0
}

func (r *Rule) equalRune(a, b rune) bool {
	if r.Insensitive {
		return foldRune(a) == foldRune(b)
	}
	return a == b
}

func (r *Rule) matchString(text []rune, s string) int {
	n := 0
	for _, c := range s {
		if n >= len(text) || !r.equalRune(text[n], c) {
			return 0
		}
		n++
	}
	return n
}

func (r *Rule) matchKeyword(l *line, offset int) int {
	if r.keywords == nil || !l.atWordStart(offset) {
		return 0
	}
	end := offset
	for end < len(l.text) && !l.isDelimiter(l.text[end]) {
		end++
	}
	if end == offset {
		return 0
	}
	cs := r.keywords.CaseSensitivity()
	if r.Insensitive {
		cs = CaseInsensitive
	}
	if r.keywords.Contains(string(l.text[offset:end]), cs) {
		return end - offset
	}
	return 0
}

func (r *Rule) matchRegExpr(l *line, offset int, captures []string) (int, []string, bool) {
	re := r.re
	if r.Dynamic {
		re = r.dynamicRegexp(captures)
	}
	if re == nil {
		return 0, nil, false
	}
	m, err := re.FindRunesMatchStartingAt(l.text, offset)
	if err != nil || m == nil || m.Index != offset {
		return 0, nil, false
	}
	groups := m.Groups()
	var captured []string
	if len(groups) > 1 {
		captured = make([]string, len(groups)-1)
		for i, g := range groups[1:] {
			captured[i] = g.String()
		}
	}
	return m.Length, captured, true
}

// maxDynamicPatterns bounds the compiled patterns a dynamic RegExpr rule
// keeps; the cache starts over when it is full.
const maxDynamicPatterns = 64

func (r *Rule) dynamicRegexp(captures []string) *regexp2.Regexp {
	pattern := r.substitute(captures, true)
	r.dynamicMu.Lock()
	re, ok := r.dynamicRe[pattern]
	r.dynamicMu.Unlock()
	if ok {
		return re
	}

	re, err := r.compile(pattern)
	if err != nil {
		warn(reporterOf(r.def), InvalidPattern, r.def, pattern, "invalid dynamic regular expression: %v", err)
	}

	r.dynamicMu.Lock()
	defer r.dynamicMu.Unlock()
	if r.dynamicRe == nil || len(r.dynamicRe) >= maxDynamicPatterns {
		r.dynamicRe = make(map[string]*regexp2.Regexp, maxDynamicPatterns)
	}
	r.dynamicRe[pattern] = re
	return re
}

// substitute replaces %1 to %9 in String with captures; "%%" is a literal
// percent sign.
func (r *Rule) substitute(captures []string, escape bool) string {
	if !r.Dynamic || !strings.ContainsRune(r.String, '%') {
		return r.String
	}
	var b strings.Builder
	s := r.String
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch {
		case next == '%':
			b.WriteByte('%')
			i++
		case next >= '1' && next <= '9':
			if idx := int(next - '1'); idx < len(captures) {
				if escape {
					b.WriteString(regexp2.Escape(captures[idx]))
				} else {
					b.WriteString(captures[idx])
				}
			}
			i++
		default:
			b.WriteByte('%')
		}
	}
	return b.String()
}

// dynamicChar returns the first rune of capture n, where c is the digit n.
func dynamicChar(c rune, captures []string) rune {
	idx := int(c - '1')
	if idx < 0 || idx >= len(captures) {
		return 0
	}
	for _, r := range captures[idx] {
		return r
	}
	return 0
}
