package syntax

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

type CaseSensitivity uint8

const (
	CaseSensitive CaseSensitivity = iota
	CaseInsensitive
)

func (cs CaseSensitivity) String() string {
	if cs == CaseInsensitive {
		return "case-insensitive"
	}
	return "case-sensitive"
}

// A KeywordList is a named set of keywords of one Definition. Its includes
// must be resolved with ResolveIncludeKeywords before the first Contains
// query: a lookup index, once built for a mode, is never rebuilt.
type KeywordList struct {
	name     string
	def      *Definition // Owner, nil until added to a Definition
	keywords []string
	includes []string

	caseSensitivity CaseSensitivity
	sorted          [2]keywordIndex // Indexed by CaseSensitivity
}

type keywordIndex struct {
	once  sync.Once
	words []string
}

// NewKeywordList creates an unresolved list. includes hold either the name
// of a list of the same definition or "list##Definition".
func NewKeywordList(name string, keywords, includes []string) *KeywordList {
	return &KeywordList{
		name:     name,
		keywords: slices.Clone(keywords),
		includes: slices.Clone(includes),
	}
}

func (k *KeywordList) Name() string { return k.name }

// Keywords returns the keywords in declaration order, followed by included
// keywords once the includes are resolved. Do not modify the result.
func (k *KeywordList) Keywords() []string { return k.keywords }

// IsResolved reports whether every include has been merged into the list.
func (k *KeywordList) IsResolved() bool { return len(k.includes) == 0 }

func (k *KeywordList) CaseSensitivity() CaseSensitivity { return k.caseSensitivity }

// SetCaseSensitivity records the default mode of the list and builds the
// index for it.
func (k *KeywordList) SetCaseSensitivity(cs CaseSensitivity) {
	k.caseSensitivity = cs
	k.index(cs)
}

// Contains reports whether token is one of the keywords under the given
// case-sensitivity.
func (k *KeywordList) Contains(token string, cs CaseSensitivity) bool {
	_, found := slices.BinarySearchFunc(k.index(cs), token, func(word, token string) int {
		return compareKeywords(word, token, cs)
	})
	return found
}

func (k *KeywordList) index(cs CaseSensitivity) []string {
	if cs > CaseInsensitive {
		cs = CaseSensitive
	}
	idx := &k.sorted[cs]
	idx.once.Do(func() {
		idx.words = slices.Clone(k.keywords)
		slices.SortFunc(idx.words, func(a, b string) int {
			return compareKeywords(a, b, cs)
		})
	})
	return idx.words
}

// compareKeywords orders by length in runes first, then by content. Words of
// equal length are therefore grouped together; the order is not alphabetical.
func compareKeywords(a, b string, cs CaseSensitivity) int {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	if cs == CaseSensitive {
		return strings.Compare(a, b)
	}
	for a != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if fa, fb := foldRune(ra), foldRune(rb); fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
		a, b = a[na:], b[nb:]
	}
	return 0
}

// foldRune maps every member of a simple case-folding orbit to one rune.
func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

// ResolveIncludeKeywords drains the includes of the list, last one first,
// and appends the keywords of each included list after resolving that list's
// own includes. def is the definition include names are looked up in; lists
// reached through a "list##Other" include are resolved from their own
// definition, which is loaded keywords-only if needed.
//
// Keywords are concatenated as they are: a keyword declared twice, or
// reached through two includes, is kept twice. An include leading back to a
// list that is still being resolved adds nothing, so cycles of any length
// terminate and a list including itself is unchanged.
func (k *KeywordList) ResolveIncludeKeywords(def *Definition) {
	k.resolveIncludes(def, make(map[*KeywordList]bool))
}

func (k *KeywordList) resolveIncludes(def *Definition, resolving map[*KeywordList]bool) {
	if len(k.includes) == 0 {
		return
	}
	resolving[k] = true
	defer delete(resolving, k)

	for len(k.includes) > 0 {
		spec := k.includes[len(k.includes)-1]
		k.includes = k.includes[:len(k.includes)-1]

		list := lookupKeywordInclude(def, spec, reporterOf(def))
		if list == nil || resolving[list] {
			continue
		}
		list.resolveIncludes(list.ownerOr(def), resolving)
		k.keywords = append(k.keywords, list.keywords...)
	}
	k.includes = nil
}

func (k *KeywordList) ownerOr(def *Definition) *Definition {
	if k.def != nil {
		return k.def
	}
	return def
}

func lookupKeywordInclude(def *Definition, spec string, r Reporter) *KeywordList {
	if def == nil {
		return nil
	}

	listName, defName, external := strings.Cut(spec, definitionSep)
	if !external {
		list := def.KeywordList(spec)
		if list == nil {
			warn(r, UnresolvedKeywordInclude, def, spec, "unresolved include keyword")
		}
		return list
	}

	target := def.definitionForName(defName)
	if target == nil {
		warn(r, UnresolvedDefinition, def, defName, "unable to resolve external include keyword for definition")
		return nil
	}
	target.LoadKeywordsOnly()
	list := target.KeywordList(listName)
	if list == nil {
		warn(r, UnresolvedKeywordInclude, def, spec, "unresolved include keyword")
	}
	return list
}
