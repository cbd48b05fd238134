// Package petrel builds typed query predicates over a declared schema and
// compiles them to a predicate string with positional "%@" placeholders plus
// the ordered list of bridged arguments.
//
// A predicate is built fluently from an Object focus:
//
//	pred, err := petrel.Compile(person, func(p petrel.Object) petrel.Bool {
//		return p.Int("age").Gt(21).And(p.Str("name").Contains("an", petrel.CaseInsensitive))
//	})
//	// pred.Expr == `age > %@ && name CONTAINS[c] %@`
//	// pred.Args == []any{int64(21), "an"}
//
// Key design constraints:
//   - Builders are persistent values: every operation copies, prefixes are
//     shared freely, and a builder is safe for concurrent use
//   - All faults are construction/compilation faults surfaced by Compile,
//     never execution-time failures
//   - Values never appear in the expression text - every operand becomes a
//     placeholder with a bound argument
//   - Compilation is deterministic: identical builder programs compile to
//     identical output
package petrel
