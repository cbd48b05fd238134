package petrel

import (
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
)

// SearchOption adjusts string pattern matching.
type SearchOption int

const (
	// CaseInsensitive matches regardless of letter case. Renders as the
	// "[c]" operator suffix.
	CaseInsensitive SearchOption = iota

	// DiacriticInsensitive matches regardless of diacritic marks. Renders
	// as the "[d]" operator suffix.
	DiacriticInsensitive
)

func searchOptions(opts []SearchOption) token.SearchOptions {
	var out token.SearchOptions
	for _, opt := range opts {
		switch opt {
		case CaseInsensitive:
			out.CaseInsensitive = true
		case DiacriticInsensitive:
			out.DiacriticInsensitive = true
		}
	}
	return out
}

// Str is a builder focused on a string field: equality plus the string
// pattern operators.
type Str struct {
	Equatable[literal.String]
}

// Contains matches when the field contains pattern as a substring.
func (s Str) Contains(pattern string, opts ...SearchOption) Bool {
	return s.search(token.SearchContains, pattern, opts)
}

// Like matches the field against a wildcard pattern ("?" one character,
// "*" any run).
func (s Str) Like(pattern string, opts ...SearchOption) Bool {
	return s.search(token.SearchLike, pattern, opts)
}

// BeginsWith matches when the field starts with pattern.
func (s Str) BeginsWith(pattern string, opts ...SearchOption) Bool {
	return s.search(token.SearchBeginsWith, pattern, opts)
}

// EndsWith matches when the field ends with pattern.
func (s Str) EndsWith(pattern string, opts ...SearchOption) Bool {
	return s.search(token.SearchEndsWith, pattern, opts)
}

func (s Str) search(kind token.SearchKind, pattern string, opts []SearchOption) Bool {
	return Bool{s.n.with(token.StringSearch{
		Kind:    kind,
		Pattern: pattern,
		Options: searchOptions(opts),
	})}
}
