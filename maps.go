package petrel

import (
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
	"github.com/petreldb/petrel/schema"
)

// Map is a builder focused on a string-keyed map field. A map supports two
// distinct membership questions, key-set and value-set, reached through the
// Keys and Values projections.
type Map struct {
	n         node
	valueKind schema.Kind
}

// Keys projects the map onto its key set.
func (m Map) Keys() MapKeys {
	return MapKeys{m.n.with(token.Aggregation{Op: token.AggAllKeys})}
}

// Values projects the map onto its value set.
func (m Map) Values() MapValues {
	return MapValues{
		n:    m.n.with(token.Aggregation{Op: token.AggAllValues}),
		kind: m.valueKind,
	}
}

// MapKeys is a builder focused on a map's key set. Keys are always strings.
type MapKeys struct {
	n node
}

// Contains tests key-set membership. Renders as "value IN keypath.@allKeys".
func (k MapKeys) Contains(key string) Bool {
	return Bool{k.n.with(token.CollectionContains{Value: literal.String(key)})}
}

// MapValues is a builder focused on a map's value set. The value kind is
// erased at the type level, so membership checks it dynamically against the
// map's declaration.
type MapValues struct {
	n    node
	kind schema.Kind
}

// Contains tests value-set membership. A value whose kind does not match the
// map declaration is a construction fault surfaced at Compile.
func (v MapValues) Contains(val literal.Value) Bool {
	if v.n.err != nil {
		return Bool{v.n}
	}
	if got := literal.Name(val); got != v.kind.String() {
		return Bool{v.n.fail(newKindMismatchError("", "", v.kind.String(), got))}
	}
	return Bool{v.n.with(token.CollectionContains{Value: val})}
}
