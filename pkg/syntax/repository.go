package syntax

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// A Repository maps definition names to lazily loaded Definitions. It is
// what `##Name` references in context switches, IncludeRules and keyword
// includes are resolved through.
//
// Registration and lookup are safe for concurrent use. Loading is not: load
// everything that will be shared (LoadAll) before highlighting from several
// goroutines.
type Repository struct {
	mu       sync.Mutex
	defs     map[string]*Definition
	reporter Reporter
}

type Option func(*Repository)

// WithReporter sends diagnostics of every definition in the repository to r.
func WithReporter(r Reporter) Option {
	return func(repo *Repository) {
		repo.reporter = r
	}
}

// WithLogger logs diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return WithReporter(NewLogReporter(logger))
}

func NewRepository(opts ...Option) *Repository {
	repo := &Repository{defs: make(map[string]*Definition)}
	for _, opt := range opts {
		opt(repo)
	}
	if repo.reporter == nil {
		repo.reporter = NewLogReporter(logrus.StandardLogger())
	}
	return repo
}

func (r *Repository) Reporter() Reporter { return r.reporter }

// Register adds a definition whose contents are produced by loader on first
// use. Registering a name again replaces the definition; States created
// with the old one are then stale.
func (r *Repository) Register(name string, loader Loader) *Definition {
	def := newDefinition(r, name, loader)
	r.mu.Lock()
	r.defs[name] = def
	r.mu.Unlock()
	return def
}

// DefinitionForName returns the named definition, without loading it, or
// nil.
func (r *Repository) DefinitionForName(name string) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defs[name]
}

// Definitions returns every definition sorted by name.
func (r *Repository) Definitions() []*Definition {
	r.mu.Lock()
	defs := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	r.mu.Unlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// LoadAll loads every definition and returns those that failed.
func (r *Repository) LoadAll() []*Definition {
	var failures []*Definition
	for _, def := range r.Definitions() {
		if !def.Load() {
			failures = append(failures, def)
		}
	}
	return failures
}
