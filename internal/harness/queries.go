package harness

import (
	"github.com/petreldb/petrel"
)

// BuildFunc is a builder program a scenario can reference by name.
type BuildFunc func(petrel.Object) petrel.Bool

// Registry maps query names to builder programs. Scenarios are data; the
// programs they exercise live here because a builder is a typed Go closure,
// not something YAML can express.
type Registry map[string]BuildFunc

// Queries is the registry the conformance scenarios draw from.
var Queries = Registry{
	"adults": func(p petrel.Object) petrel.Bool {
		return p.Int("age").Gte(21)
	},
	"named-ann": func(p petrel.Object) petrel.Bool {
		return p.Str("name").BeginsWith("Ann", petrel.CaseInsensitive)
	},
	"has-adult-friend": func(p petrel.Object) petrel.Bool {
		return p.Objects("friends").Element().Int("age").Gte(18).Count().Gt(0)
	},
	"urgent-scores": func(p petrel.Object) petrel.Bool {
		return p.Strs("tags").Contains("urgent").
			And(p.Ints("scores").WithinInclusive(1, 10))
	},
}
