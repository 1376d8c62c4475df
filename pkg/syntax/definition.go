// Package syntax is the runtime of a context-based syntax highlighter in the
// style of Kate's definitions: it resolves context switch directives and
// keyword list includes across definitions, and keeps the per-line context
// stack that lets an editor resume highlighting at any line.
package syntax

import (
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
)

// DefaultWordDelimiters separate words for Keyword, WordDetect and Int rules.
const DefaultWordDelimiters = " \t.():!+,-<=>%&*/;?[]^{|}~\\"

// A Loader fills in the contexts, keyword lists and formats of a definition.
// It runs once, the first time the definition is needed.
type Loader func(def *Definition) error

type loadState uint8

const (
	unloaded loadState = iota
	populated          // Loader ran; includes and switches are unresolved
	resolving
	loaded
	failed
)

var lastDefinitionID atomic.Uint64

// A Definition is the grammar of one language: named contexts, the first of
// which is the initial one, and named keyword lists.
//
// Definitions are loaded lazily. LoadKeywordsOnly runs the loader, which is
// all another definition needs to include keyword lists; Load additionally
// resolves every include and context switch. Both may be called any number
// of times, also while another definition is loading.
type Definition struct {
	repo   *Repository
	name   string
	id     uint64
	loader Loader
	state  loadState
	err    error

	reporter Reporter // Overrides the repository's reporter when set

	contexts       []*Context
	contextsByName map[string]*Context
	keywordLists   map[string]*KeywordList
	formats        map[string]Format

	keywordCaseSensitivity CaseSensitivity
	wordDelimiters         string
}

// NewDefinition creates a definition outside of any Repository. References
// to other definitions cannot be resolved from it.
func NewDefinition(name string) *Definition {
	return newDefinition(nil, name, nil)
}

func newDefinition(repo *Repository, name string, loader Loader) *Definition {
	return &Definition{
		repo:           repo,
		name:           name,
		id:             lastDefinitionID.Add(1),
		loader:         loader,
		contextsByName: make(map[string]*Context),
		keywordLists:   make(map[string]*KeywordList),
		formats:        make(map[string]Format),
		wordDelimiters: DefaultWordDelimiters,
	}
}

func (d *Definition) Name() string { return d.name }

// SetReporter directs diagnostics about d to r instead of the reporter of
// its repository.
func (d *Definition) SetReporter(r Reporter) { d.reporter = r }

// ID is unique per Definition value for the lifetime of the process.
func (d *Definition) ID() uint64 { return d.id }

// IsValid reports whether the definition loaded without error and has an
// initial context.
func (d *Definition) IsValid() bool {
	return d.state != failed && len(d.contexts) > 0
}

// Err returns the error of a failed load.
func (d *Definition) Err() error { return d.err }

func (d *Definition) IsLoaded() bool { return d.state == loaded }

// AddContext appends ctx to the definition. The first context added is the
// initial one. A context with an existing name replaces the lookup entry of
// the earlier one.
func (d *Definition) AddContext(ctx *Context) *Context {
	ctx.def = d
	ctx.id = d.id<<32 | uint64(len(d.contexts))
	for _, r := range ctx.Rules {
		r.def = d
	}
	d.contexts = append(d.contexts, ctx)
	d.contextsByName[ctx.Name] = ctx
	return ctx
}

func (d *Definition) AddKeywordList(list *KeywordList) *KeywordList {
	list.def = d
	d.keywordLists[list.name] = list
	return list
}

func (d *Definition) AddFormat(name string, style TextStyle) {
	d.formats[name] = Format{Name: name, Style: style}
}

// SetKeywordCaseSensitivity sets the default mode of every keyword list.
func (d *Definition) SetKeywordCaseSensitivity(cs CaseSensitivity) {
	d.keywordCaseSensitivity = cs
}

func (d *Definition) KeywordCaseSensitivity() CaseSensitivity {
	return d.keywordCaseSensitivity
}

func (d *Definition) SetWordDelimiters(delimiters string) {
	d.wordDelimiters = delimiters
}

func (d *Definition) WordDelimiters() string { return d.wordDelimiters }

func (d *Definition) InitialContext() *Context {
	if len(d.contexts) == 0 {
		return nil
	}
	return d.contexts[0]
}

func (d *Definition) Context(name string) *Context {
	return d.contextsByName[name]
}

func (d *Definition) Contexts() []*Context { return d.contexts }

func (d *Definition) KeywordList(name string) *KeywordList {
	return d.keywordLists[name]
}

// KeywordLists returns the lists sorted by name.
func (d *Definition) KeywordLists() []*KeywordList {
	lists := make([]*KeywordList, 0, len(d.keywordLists))
	for _, l := range d.keywordLists {
		lists = append(lists, l)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].name < lists[j].name })
	return lists
}

// Format returns the named format. Unknown names yield a Normal format of
// that name.
func (d *Definition) Format(name string) Format {
	if f, ok := d.formats[name]; ok {
		return f
	}
	return Format{Name: name}
}

// LoadKeywordsOnly makes sure the loader has run. Keyword lists are
// available afterwards, but may still have pending includes.
func (d *Definition) LoadKeywordsOnly() bool {
	return d.populate()
}

// Load runs the loader if needed, then resolves keyword includes, builds
// the keyword indices and resolves all context switches and rule
// references. Unresolvable references are reported, not returned.
func (d *Definition) Load() bool {
	switch d.state {
	case loaded, resolving:
		return true
	case failed:
		return false
	}
	if !d.populate() {
		return false
	}

	d.state = resolving
	lists := d.KeywordLists()
	for _, list := range lists {
		list.ResolveIncludeKeywords(d)
	}
	for _, list := range lists {
		list.SetCaseSensitivity(d.keywordCaseSensitivity)
	}
	for _, ctx := range d.contexts {
		ctx.resolve()
	}
	d.state = loaded
	return true
}

func (d *Definition) populate() bool {
	switch d.state {
	case failed:
		return false
	case unloaded:
	default:
		return true
	}

	d.state = populated
	if d.loader == nil {
		return true
	}
	if err := d.loader(d); err != nil {
		d.state = failed
		d.err = errors.Wrapf(err, "loading definition %q", d.name)
		reporterOf(d).Report(Diagnostic{
			Severity:   SeverityError,
			Code:       LoadFailed,
			Definition: d.name,
			Subject:    d.name,
			Message:    d.err.Error(),
		})
		return false
	}
	return true
}

// ResolveIncludedContext finds contextName in the definition named defName,
// or in d if defName is empty. The other definition is loaded first; an
// empty contextName then means its initial context. It returns the context
// and the definition it was found in, or nil.
func (d *Definition) ResolveIncludedContext(defName, contextName string) (*Context, *Definition) {
	if defName == "" {
		return d.Context(contextName), d
	}

	target := d.definitionForName(defName)
	if target == nil {
		warn(reporterOf(d), UnresolvedDefinition, d, defName, "unable to resolve external definition")
		return nil, nil
	}
	if !target.Load() {
		return nil, target
	}
	if contextName == "" {
		return target.InitialContext(), target
	}
	return target.Context(contextName), target
}

func (d *Definition) definitionForName(name string) *Definition {
	if name == d.name {
		return d
	}
	if d.repo == nil {
		return nil
	}
	return d.repo.DefinitionForName(name)
}

func reporterOf(d *Definition) Reporter {
	switch {
	case d == nil:
		return discardReporter{}
	case d.reporter != nil:
		return d.reporter
	case d.repo != nil:
		return d.repo.reporter
	}
	return discardReporter{}
}
