// Package grammars holds the built-in syntax definitions and detects which
// one applies to a file.
package grammars

import (
	"path/filepath"
	"strings"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
)

// LangEntry holds a registered definition with the file extensions it is
// used for.
type LangEntry struct {
	Name       string        // Definition name, used in "ctx##Name" references
	Extensions []string      // e.g. [".go"]
	Filenames  []string      // Exact base names, e.g. ["go.mod"]
	Load       syntax.Loader // Builds the definition on first use
}

var registry []LangEntry

// Register adds a language to the registry.
func Register(entry LangEntry) {
	registry = append(registry, entry)
}

// DetectLanguage returns the LangEntry for a filename, or nil if unknown.
// Exact base names are matched before extensions.
func DetectLanguage(filename string) *LangEntry {
	base := filepath.Base(filename)
	for i := range registry {
		for _, name := range registry[i].Filenames {
			if base == name {
				return &registry[i]
			}
		}
	}
	for i := range registry {
		for _, ext := range registry[i].Extensions {
			if strings.HasSuffix(base, ext) {
				return &registry[i]
			}
		}
	}
	return nil
}

// LanguageByName looks an entry up by definition name, ignoring case.
func LanguageByName(name string) *LangEntry {
	for i := range registry {
		if strings.EqualFold(registry[i].Name, name) {
			return &registry[i]
		}
	}
	return nil
}

// AllLanguages returns all registered languages.
func AllLanguages() []LangEntry {
	return registry
}

// NewRepository returns a repository with every registered language.
// Nothing is loaded until it is first used.
func NewRepository(opts ...syntax.Option) *syntax.Repository {
	repo := syntax.NewRepository(opts...)
	for _, entry := range registry {
		repo.Register(entry.Name, entry.Load)
	}
	return repo
}
