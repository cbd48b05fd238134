package token

import "github.com/petreldb/petrel/literal"

// Token represents one step of a predicate expression.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the predicate compiler.
//
// Token kinds:
//   - KeyPath: a field reference, possibly one step of a dotted path
//   - Comparison: a basic comparison operator (==, !=, <, >, >=, <=, NOT)
//   - Compound: a boolean connective (&&, ||)
//   - Operand: a literal bound to the expression
//   - StringSearch: a string pattern operator with locale/case options
//   - Range: numeric range membership
//   - CollectionContains: membership test over a to-many property
//   - Aggregation: an aggregation suffix over the preceding collection
//   - Subquery: a pre-compiled correlated sub-query
//
// A token sequence is created empty, grows strictly by appending, and is
// consumed exactly once by the predicate compiler. Tokens are immutable
// values; builders share unaffected prefixes freely.
type Token interface {
	exprToken() // Marker method - seals interface to this package
}

// KeyPath references a named field reachable from the current focus.
//
// Consecutive KeyPath tokens render dot-joined ("address.city").
// Collection marks a to-many relationship or collection property; inside a
// sub-query the collection key-path renders as the correlation variable
// instead of its name.
type KeyPath struct {
	Name       string
	Collection bool
}

func (KeyPath) exprToken() {}

// CompareOp enumerates the basic comparison operators.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpGreater
	OpGreaterEqual
	OpLessEqual
	OpNot
)

// String returns the operator's rendered text.
func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpNot:
		return "NOT"
	default:
		return "?"
	}
}

// Comparison applies a basic comparison operator.
type Comparison struct {
	Op CompareOp
}

func (Comparison) exprToken() {}

// CompoundOp enumerates the boolean connectives.
type CompoundOp int

const (
	OpAnd CompoundOp = iota
	OpOr
)

// String returns the connective's rendered text.
func (op CompoundOp) String() string {
	if op == OpOr {
		return "||"
	}
	return "&&"
}

// Compound joins the already-rendered left side with the tokens that follow.
type Compound struct {
	Op CompoundOp
}

func (Compound) exprToken() {}

// Operand binds a literal value to the expression.
//
// A nil Value denotes an explicit null comparison: the compiler still
// renders a positional placeholder and binds nil.
type Operand struct {
	Value literal.Value
}

func (Operand) exprToken() {}

// SearchKind enumerates the string pattern operators.
type SearchKind int

const (
	SearchContains SearchKind = iota
	SearchLike
	SearchBeginsWith
	SearchEndsWith
)

// Keyword returns the rendered operator keyword.
func (k SearchKind) Keyword() string {
	switch k {
	case SearchLike:
		return "LIKE"
	case SearchBeginsWith:
		return "BEGINSWITH"
	case SearchEndsWith:
		return "ENDSWITH"
	default:
		return "CONTAINS"
	}
}

// SearchOptions is the option set for string pattern operators.
type SearchOptions struct {
	CaseInsensitive      bool
	DiacriticInsensitive bool
}

// Suffix returns the rendered option suffix: "[c]", "[d]", "[cd]", or "".
func (o SearchOptions) Suffix() string {
	switch {
	case o.CaseInsensitive && o.DiacriticInsensitive:
		return "[cd]"
	case o.CaseInsensitive:
		return "[c]"
	case o.DiacriticInsensitive:
		return "[d]"
	default:
		return ""
	}
}

// StringSearch applies a string pattern operator to the preceding key-path.
type StringSearch struct {
	Kind    SearchKind
	Pattern string
	Options SearchOptions
}

func (StringSearch) exprToken() {}

// Range tests membership of the preceding key-path in [Low, High) or, when
// Inclusive is set, [Low, High].
type Range struct {
	Low       literal.Value
	High      literal.Value
	Inclusive bool
}

func (Range) exprToken() {}

// CollectionContains tests membership of Value in the preceding to-many
// key-path. Renders as "value IN keypath", not "keypath IN value".
type CollectionContains struct {
	Value literal.Value
}

func (CollectionContains) exprToken() {}

// AggregateOp enumerates aggregation suffixes over a collection key-path.
//
// AggAllKeys and AggAllValues are the map key/value projections: they make
// key-set membership and value-set membership compile to distinct
// predicates.
type AggregateOp int

const (
	AggMin AggregateOp = iota
	AggMax
	AggAvg
	AggSum
	AggCount
	AggAllKeys
	AggAllValues
)

// Suffix returns the rendered aggregation suffix.
func (op AggregateOp) Suffix() string {
	switch op {
	case AggMin:
		return ".@min"
	case AggMax:
		return ".@max"
	case AggAvg:
		return ".@avg"
	case AggSum:
		return ".@sum"
	case AggCount:
		return ".@count"
	case AggAllKeys:
		return ".@allKeys"
	case AggAllValues:
		return ".@allValues"
	default:
		return ""
	}
}

// Aggregation applies an aggregation suffix to the immediately preceding
// collection key-path.
type Aggregation struct {
	Op AggregateOp
}

func (Aggregation) exprToken() {}

// Subquery carries a pre-compiled correlated sub-query over a named
// collection. Expr is the inner predicate rendered in sub-query mode; Args
// are its bridged arguments, spliced positionally at the token's position.
type Subquery struct {
	Collection string
	Expr       string
	Args       []any
}

func (Subquery) exprToken() {}
