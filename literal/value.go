package literal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Value is a sealed interface representing the closed set of operand kinds a
// predicate may bind. Only Null, String, Int, Float, Bool, Timestamp, and
// UUID implement it.
//
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the predicate compiler. Every variant carries
// its own bridging function (Bridge) producing the representation the
// storage engine accepts as a bound argument.
type Value interface {
	literalValue() // Sealed - only these types implement it

	// Bridge returns the engine-facing representation of the value.
	Bridge() any
}

// Null represents an explicit null operand.
//
// A null operand still renders a positional placeholder; the bound argument
// is nil. Using an explicit type (rather than a nil Value) keeps the sealed
// interface total.
type Null struct{}

func (Null) literalValue() {}

// Bridge returns nil; the engine binds SQL-style NULL semantics.
func (Null) Bridge() any { return nil }

// String represents a string operand.
type String string

func (String) literalValue() {}

// Bridge returns the native string.
func (v String) Bridge() any { return string(v) }

// Int represents an integer operand. Always int64.
type Int int64

func (Int) literalValue() {}

// Bridge returns the native int64.
func (v Int) Bridge() any { return int64(v) }

// Float represents a floating-point operand.
type Float float64

func (Float) literalValue() {}

// Bridge returns the native float64.
func (v Float) Bridge() any { return float64(v) }

// Bool represents a boolean operand.
type Bool bool

func (Bool) literalValue() {}

// Bridge returns the native bool.
func (v Bool) Bridge() any { return bool(v) }

// Timestamp represents a point-in-time operand.
type Timestamp time.Time

func (Timestamp) literalValue() {}

// Bridge returns the native time.Time.
func (v Timestamp) Bridge() any { return time.Time(v) }

// UUID represents a universally unique identifier operand.
type UUID uuid.UUID

func (UUID) literalValue() {}

// Bridge returns the canonical string form ("xxxxxxxx-xxxx-...").
// Engines bind UUIDs by their textual representation.
func (v UUID) Bridge() any { return uuid.UUID(v).String() }

// Comparable is the constraint satisfied by operand kinds that support
// equality operators. Null is excluded: explicit null comparison goes
// through IsNull/IsNotNull on the builder, never through a typed operand.
type Comparable interface {
	String | Int | Float | Bool | Timestamp | UUID
}

// Orderable is the constraint satisfied by operand kinds that support
// ordering operators, range containment, and collection aggregation.
// Every Orderable kind is also Comparable.
type Orderable interface {
	Int | Float | Timestamp
}

// Time wraps a time.Time as a Timestamp operand.
func Time(t time.Time) Timestamp { return Timestamp(t) }

// ID wraps a uuid.UUID as a UUID operand.
func ID(u uuid.UUID) UUID { return UUID(u) }

// Name returns a short human-readable kind name for diagnostics.
func Name(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Timestamp:
		return "timestamp"
	case UUID:
		return "uuid"
	default:
		return fmt.Sprintf("%T", v)
	}
}
