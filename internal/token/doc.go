// Package token defines the expression token stream behind petrel's typed
// predicate builder.
//
// A predicate is composed as a flat, append-only sequence of tokens rather
// than a tree. The builder linearizes every operation as it happens, and the
// compiler (internal/render) performs a single left-to-right rendering pass
// over the finished sequence. Order is therefore contractual: identical
// sequences always compile to identical output.
//
// ARCHITECTURE:
//
//	[typed builder] → [token sequence] → [render.Compile] → (predicate, args)
//
// SEALED INTERFACE:
//
// Token is a sealed interface using the marker method pattern. Only types in
// this package implement it. This enables:
//   - Exhaustive type switches in the compiler
//   - Compile-time safety against external extensions
//
// Example:
//
//	switch t := tok.(type) {
//	case token.KeyPath:
//	    // render field reference
//	case token.Operand:
//	    // render placeholder, bind argument
//	default:
//	    // impossible - compiler knows all token kinds
//	}
//
// STRUCTURAL VALIDATION:
//
// The builder's type system prevents most malformed sequences at
// construction time. Validate covers the rest (range containment without a
// preceding key-path, containment over a non-collection, misplaced
// aggregation). Violations are hard errors: a sequence is never reordered or
// repaired to "fix" an invalid composition.
package token
