package petrel

import (
	"github.com/petreldb/petrel/internal/render"
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
)

// Count extracts the boolean expression into a correlated sub-query and
// refocuses on the number of matching elements.
//
// The expression must range over exactly one distinct collection: zero
// collections or more than one is a structural fault - the builder never
// silently picks one. The extracted expression compiles in sub-query mode
// (the collection key-path becomes the correlation variable "$obj") and the
// whole sequence is replaced by a single sub-query token whose arguments are
// spliced positionally into the outer predicate.
func (b Bool) Count() Ordered[literal.Int] {
	if b.n.err != nil {
		return Ordered[literal.Int]{Equatable[literal.Int]{b.n}}
	}

	collections := token.Collections(b.n.tokens)
	switch {
	case len(collections) == 0:
		return failedCount(b.n.fail(newNoCollectionSubqueryError()))
	case len(collections) > 1:
		return failedCount(b.n.fail(newMultiCollectionSubqueryError(collections)))
	}

	expr, args, err := render.Compile(b.n.tokens, render.Options{Subquery: true})
	if err != nil {
		return failedCount(b.n.fail(err))
	}

	return Ordered[literal.Int]{Equatable[literal.Int]{node{tokens: []token.Token{
		token.Subquery{Collection: collections[0], Expr: expr, Args: args},
	}}}}
}

func failedCount(n node) Ordered[literal.Int] {
	return Ordered[literal.Int]{Equatable[literal.Int]{n}}
}
