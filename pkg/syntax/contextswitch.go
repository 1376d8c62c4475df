package syntax

import "strings"

const (
	stayDirective = "#stay"
	popDirective  = "#pop"
	definitionSep = "##"
)

// A ContextSwitch is a resolved context switch directive: how many contexts
// to pop and which context, if any, to push afterwards.
type ContextSwitch struct {
	popCount int
	isStay   bool
	context  *Context
}

// StaySwitch is the switch that leaves the context stack untouched.
var StaySwitch = ContextSwitch{isStay: true}

// ResolveContextSwitch parses directive and resolves its target context
// against def. The accepted forms are:
//
//	""  "#stay"              no change
//	"#pop#pop..."            pop once per "#pop"
//	"#pop!name"              pop once, then push name; "#pop!" ends the pops
//	"name"  "name##Other"    push a context of def or of definition Other
//	"##Other"                push the initial context of Other
//
// Pops and a push can be combined ("#pop#popname##Other"). A target that
// cannot be resolved is reported and dropped; the pops still apply.
func ResolveContextSwitch(def *Definition, directive string) ContextSwitch {
	if directive == "" || directive == stayDirective {
		return StaySwitch
	}

	var cs ContextSwitch
	for strings.HasPrefix(directive, popDirective) {
		cs.popCount++
		if len(directive) > len(popDirective) && directive[len(popDirective)] == '!' {
			directive = directive[len(popDirective)+1:]
			break
		}
		directive = directive[len(popDirective):]
	}

	cs.isStay = cs.popCount == 0

	if directive == "" {
		return cs
	}

	contextName, defName, _ := strings.Cut(directive, definitionSep)

	cs.context, _ = def.ResolveIncludedContext(defName, contextName)
	if cs.context != nil {
		cs.isStay = false
	} else {
		warn(reporterOf(def), UnresolvedContext, def, contextName, "cannot find context")
	}
	return cs
}

// PopCount is the number of contexts to pop before pushing Context().
func (cs ContextSwitch) PopCount() int { return cs.popCount }

// IsStay reports whether the switch neither pops nor pushes anything.
func (cs ContextSwitch) IsStay() bool { return cs.isStay }

// Context returns the context to push, or nil.
func (cs ContextSwitch) Context() *Context { return cs.context }

func (cs ContextSwitch) String() string {
	if cs.isStay {
		return stayDirective
	}
	s := strings.Repeat(popDirective, cs.popCount)
	if cs.context != nil {
		if cs.popCount > 0 {
			s += "!"
		}
		s += cs.context.Name + definitionSep + cs.context.def.name
	}
	return s
}
