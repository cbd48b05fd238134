package petrel

import (
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
)

// Equatable is a builder focused on a comparable value kind. It exposes the
// equality operators; the constraint keeps them off kinds that do not
// support equality.
type Equatable[T literal.Comparable] struct {
	n node
}

// Eq appends an equality comparison against v and retypes to boolean.
func (e Equatable[T]) Eq(v T) Bool {
	return Bool{e.n.with(
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: toValue(v)},
	)}
}

// Neq appends an inequality comparison against v and retypes to boolean.
func (e Equatable[T]) Neq(v T) Bool {
	return Bool{e.n.with(
		token.Comparison{Op: token.OpNotEqual},
		token.Operand{Value: toValue(v)},
	)}
}

// IsNull compares the focus against explicit null. The compiled predicate
// still renders a placeholder; the bound argument is nil.
func (e Equatable[T]) IsNull() Bool {
	return Bool{e.n.with(
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.Null{}},
	)}
}

// IsNotNull compares the focus against explicit non-null.
func (e Equatable[T]) IsNotNull() Bool {
	return Bool{e.n.with(
		token.Comparison{Op: token.OpNotEqual},
		token.Operand{Value: literal.Null{}},
	)}
}

// Ordered is a builder focused on a numeric-orderable value kind: equality
// plus ordering operators and range containment.
type Ordered[T literal.Orderable] struct {
	Equatable[T]
}

// Lt appends a less-than comparison and retypes to boolean.
func (o Ordered[T]) Lt(v T) Bool {
	return o.compare(token.OpLess, v)
}

// Lte appends a less-than-or-equal comparison and retypes to boolean.
func (o Ordered[T]) Lte(v T) Bool {
	return o.compare(token.OpLessEqual, v)
}

// Gt appends a greater-than comparison and retypes to boolean.
func (o Ordered[T]) Gt(v T) Bool {
	return o.compare(token.OpGreater, v)
}

// Gte appends a greater-than-or-equal comparison and retypes to boolean.
func (o Ordered[T]) Gte(v T) Bool {
	return o.compare(token.OpGreaterEqual, v)
}

func (o Ordered[T]) compare(op token.CompareOp, v T) Bool {
	return Bool{o.n.with(
		token.Comparison{Op: op},
		token.Operand{Value: toValue(v)},
	)}
}

// Within tests membership in the half-open range [low, high). Compiles to a
// double inequality re-using the key-path name.
func (o Ordered[T]) Within(low, high T) Bool {
	return Bool{o.n.with(token.Range{Low: toValue(low), High: toValue(high)})}
}

// WithinInclusive tests membership in the closed range [low, high].
// Compiles to BETWEEN.
func (o Ordered[T]) WithinInclusive(low, high T) Bool {
	return Bool{o.n.with(token.Range{Low: toValue(low), High: toValue(high), Inclusive: true})}
}

// Bool is a builder holding a boolean-valued expression: the result of a
// comparison, search, containment, or a compound of those.
type Bool struct {
	n node
}

// And concatenates both expressions around a conjunction. Token layout is
// associative: a.And(b).And(c) and a.And(b.And(c)) render logically
// equivalent predicates.
func (b Bool) And(other Bool) Bool {
	return b.join(token.OpAnd, other)
}

// Or concatenates both expressions around a disjunction.
func (b Bool) Or(other Bool) Bool {
	return b.join(token.OpOr, other)
}

func (b Bool) join(op token.CompoundOp, other Bool) Bool {
	if b.n.err != nil {
		return b
	}
	if other.n.err != nil {
		return other
	}
	ts := make([]token.Token, 0, len(b.n.tokens)+1+len(other.n.tokens))
	ts = append(ts, b.n.tokens...)
	ts = append(ts, token.Compound{Op: op})
	ts = append(ts, other.n.tokens...)
	return Bool{node{tokens: ts}}
}

// Not negates the whole expression built so far by inserting NOT at the
// front of the token sequence. Double negation is rendered as written
// ("NOT NOT ..."), never simplified.
func (b Bool) Not() Bool {
	if b.n.err != nil {
		return b
	}
	ts := make([]token.Token, 0, len(b.n.tokens)+1)
	ts = append(ts, token.Comparison{Op: token.OpNot})
	ts = append(ts, b.n.tokens...)
	return Bool{node{tokens: ts}}
}
