package syntax

import "strings"

// A Context is a named state of a Definition. Its rules apply while it is
// on top of the context stack.
//
// The exported fields describe the context and are read when the definition
// loads; the directives are then resolved into ContextSwitches.
type Context struct {
	Name      string
	Attribute string // Format of text no rule matches

	LineEndContext     string // Directive applied at the end of every line
	LineEmptyContext   string // Directive applied to empty lines instead
	FallthroughContext string // Directive applied when no rule matches

	// Dynamic contexts keep the captures of the rule that entered them, for
	// use by their dynamic rules.
	Dynamic bool

	Rules []*Rule

	def    *Definition
	id     uint64
	format Format

	lineEnd           ContextSwitch
	lineEmpty         ContextSwitch
	fallthroughSwitch ContextSwitch
}

func (c *Context) Definition() *Definition { return c.def }

// ID identifies the context within the process: the definition ID in the
// upper half, the context's position in the lower.
func (c *Context) ID() uint64 { return c.id }

func (c *Context) Format() Format { return c.format }

func (c *Context) LineEnd() ContextSwitch { return c.lineEnd }

func (c *Context) LineEmpty() ContextSwitch { return c.lineEmpty }

func (c *Context) Fallthrough() ContextSwitch { return c.fallthroughSwitch }

func (c *Context) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name + definitionSep + c.def.name
}

func (c *Context) resolve() {
	d := c.def
	c.format = d.Format(c.Attribute)
	c.lineEnd = ResolveContextSwitch(d, c.LineEndContext)
	c.lineEmpty = ResolveContextSwitch(d, c.LineEmptyContext)
	c.fallthroughSwitch = ResolveContextSwitch(d, c.FallthroughContext)
	for _, r := range c.Rules {
		r.def = d
		r.resolve(c)
	}
}

// resolveInclude resolves the target of an IncludeRules rule: "ctx",
// "ctx##Other" or "##Other".
func (c *Context) resolveInclude(spec string) *Context {
	name, defName, _ := strings.Cut(spec, definitionSep)
	target, _ := c.def.ResolveIncludedContext(defName, name)
	if target == nil {
		warn(reporterOf(c.def), UnresolvedContext, c.def, spec, "cannot find included context in %s", c.Name)
	}
	return target
}
