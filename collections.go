package petrel

import (
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
	"github.com/petreldb/petrel/schema"
)

// ComparableList is a builder focused on a collection of comparable values.
type ComparableList[T literal.Comparable] struct {
	n  node
	kp token.KeyPath
}

// Contains tests membership of v in the collection. Renders with the value
// on the left: "value IN keypath".
func (l ComparableList[T]) Contains(v T) Bool {
	return Bool{l.n.with(token.CollectionContains{Value: toValue(v)})}
}

// Count refocuses on the collection's element count.
func (l ComparableList[T]) Count() Ordered[literal.Int] {
	return Ordered[literal.Int]{Equatable[literal.Int]{l.n.with(token.Aggregation{Op: token.AggCount})}}
}

// OrderedList is a builder focused on a collection of orderable values:
// membership plus range containment and the numeric aggregations.
type OrderedList[T literal.Orderable] struct {
	ComparableList[T]
}

// Min refocuses on the collection's minimum element.
func (l OrderedList[T]) Min() Ordered[T] {
	return l.agg(token.AggMin)
}

// Max refocuses on the collection's maximum element.
func (l OrderedList[T]) Max() Ordered[T] {
	return l.agg(token.AggMax)
}

// Sum refocuses on the sum of the collection's elements.
func (l OrderedList[T]) Sum() Ordered[T] {
	return l.agg(token.AggSum)
}

// Avg refocuses on the average of the collection's elements. The average of
// an integer collection is fractional, so the focus is always float.
func (l OrderedList[T]) Avg() Ordered[literal.Float] {
	return Ordered[literal.Float]{Equatable[literal.Float]{l.n.with(token.Aggregation{Op: token.AggAvg})}}
}

func (l OrderedList[T]) agg(op token.AggregateOp) Ordered[T] {
	return Ordered[T]{Equatable[T]{l.n.with(token.Aggregation{Op: op})}}
}

// Within tests that every element lies in the half-open range [low, high).
// There is no direct collection-range operator; the test lowers to a
// conjunction over the min and max aggregations, re-emitting the collection
// key-path for the upper bound.
func (l OrderedList[T]) Within(low, high T) Bool {
	return l.boundedBy(low, high, token.OpLess)
}

// WithinInclusive tests that every element lies in the closed range
// [low, high].
func (l OrderedList[T]) WithinInclusive(low, high T) Bool {
	return l.boundedBy(low, high, token.OpLessEqual)
}

func (l OrderedList[T]) boundedBy(low, high T, highOp token.CompareOp) Bool {
	return Bool{l.n.with(
		token.Aggregation{Op: token.AggMin},
		token.Comparison{Op: token.OpGreaterEqual},
		token.Operand{Value: toValue(low)},
		token.Compound{Op: token.OpAnd},
		l.kp,
		token.Aggregation{Op: token.AggMax},
		token.Comparison{Op: highOp},
		token.Operand{Value: toValue(high)},
	)}
}

// List is a builder focused on a to-many relationship of objects.
type List struct {
	n    node
	elem *schema.Object
}

// Element refocuses on the element object type without appending a token.
// Field accesses from the returned builder range over the collection's
// elements; the resulting boolean expression is typically closed with
// Bool.Count to form a correlated sub-query.
func (l List) Element() Object {
	return Object{n: l.n, obj: l.elem}
}

// Count refocuses on the relationship's element count.
func (l List) Count() Ordered[literal.Int] {
	return Ordered[literal.Int]{Equatable[literal.Int]{l.n.with(token.Aggregation{Op: token.AggCount})}}
}
