// Package render compiles a finished expression token sequence into the
// textual predicate plus ordered argument list consumed by the storage
// engine's predicate evaluator.
//
// The compiler is a single left-to-right pass over the token stream. It owns
// the exact rendering contract:
//   - leading-space discipline: the first token renders bare, every
//     subsequent token gets one leading space
//   - consecutive key-paths dot-join ("address.city")
//   - operands render as positional "%@" placeholders; the bridged value is
//     appended to the argument list (explicit null binds nil)
//   - string search renders "KEYWORD[opts] %@" with the pattern bound
//   - closed ranges render "BETWEEN {%@, %@}"; half-open ranges re-use the
//     preceding key-path name as ">= %@ && name < %@"
//   - collection containment inserts "%@ IN " before the preceding key-path
//     run ("value IN keypath")
//   - aggregations render as ".@min"-style suffixes with no argument
//   - sub-queries render "SUBQUERY(coll, $obj, inner).@count" and splice the
//     inner argument list positionally
//
// In sub-query mode (Options.Subquery) collection key-paths render as the
// correlation variable "$obj" in place of their names.
//
// Compilation is pure and deterministic: identical token sequences compile
// to identical output, and the returned pair is directly executable by the
// engine without further transformation.
package render
