package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petreldb/petrel/internal/token"
)

// Rendering failures. All failures surface at compilation time; there is no
// partial-success mode.
var (
	// ErrNoKeyPathForRange indicates a half-open range with no preceding
	// key-path whose name could be re-used for the double inequality.
	ErrNoKeyPathForRange = errors.New("half-open range requires a preceding key-path")
)

// Options controls compilation of a token sequence.
type Options struct {
	// Subquery enables sub-query mode: collection key-paths render as the
	// correlation variable "$obj" instead of their names.
	Subquery bool
}

// Compile renders a finished token sequence into a predicate string with
// positional "%@" placeholders and the ordered list of bridged arguments.
//
// The pass is strictly left-to-right and order-sensitive; identical token
// sequences always compile to identical output. Values are never
// interpolated into the predicate text - every operand becomes a
// placeholder with a bound argument.
func Compile(tokens []token.Token, opts Options) (string, []any, error) {
	if err := token.Validate(tokens); err != nil {
		return "", nil, fmt.Errorf("compile predicate: %w", err)
	}

	r := &renderer{subquery: opts.Subquery, runStart: -1}
	for i, tok := range tokens {
		if err := r.render(tok); err != nil {
			return "", nil, fmt.Errorf("compile predicate: token %d: %w", i, err)
		}
	}
	return strings.Join(r.frags, ""), r.args, nil
}

// renderer holds the rolling output buffer and argument list for one pass.
//
// Each token renders into its own fragment so CollectionContains can insert
// text before the start of the preceding key-path run after the fact.
type renderer struct {
	frags []string
	args  []any

	subquery bool

	// prevKeyPath is true when the previous token was a key-path, which
	// makes the next key-path dot-join instead of space-join.
	prevKeyPath bool

	// lastKeyPath is the dotted name of the most recent key-path run,
	// re-used when a half-open range is lowered to a double inequality.
	lastKeyPath string

	// runStart is the fragment index where the most recent key-path run
	// began, or -1 before any key-path has rendered.
	runStart int
}

// sp returns the leading separator: the first token renders bare, every
// subsequent token gets a single leading space.
func (r *renderer) sp() string {
	if len(r.frags) == 0 {
		return ""
	}
	return " "
}

func (r *renderer) render(tok token.Token) error {
	switch t := tok.(type) {
	case token.KeyPath:
		r.renderKeyPath(t)
		return nil
	case token.Comparison:
		r.frags = append(r.frags, r.sp()+t.Op.String())
	case token.Compound:
		r.frags = append(r.frags, r.sp()+t.Op.String())
	case token.Operand:
		r.frags = append(r.frags, r.sp()+"%@")
		r.args = append(r.args, bridge(t.Value))
	case token.StringSearch:
		r.frags = append(r.frags, r.sp()+t.Kind.Keyword()+t.Options.Suffix()+" %@")
		r.args = append(r.args, t.Pattern)
	case token.Range:
		if err := r.renderRange(t); err != nil {
			return err
		}
	case token.CollectionContains:
		r.insertBeforeKeyPathRun("%@ IN ")
		r.args = append(r.args, bridge(t.Value))
	case token.Aggregation:
		// Aggregation is a suffix on the preceding key-path: no separator.
		// The suffix also joins lastKeyPath so a later half-open range
		// lowers against the aggregate, not the bare collection.
		r.frags = append(r.frags, t.Op.Suffix())
		r.lastKeyPath += t.Op.Suffix()
	case token.Subquery:
		r.frags = append(r.frags, fmt.Sprintf("%sSUBQUERY(%s, $obj, %s).@count", r.sp(), t.Collection, t.Expr))
		r.args = append(r.args, t.Args...)
	default:
		return fmt.Errorf("unsupported token type: %T", tok)
	}
	r.prevKeyPath = false
	return nil
}

// renderKeyPath renders a field reference.
//
// Consecutive key-paths dot-join ("address.city"). In sub-query mode a
// collection key-path renders as the correlation variable "$obj" and
// dot-joining is skipped for that token.
func (r *renderer) renderKeyPath(t token.KeyPath) {
	switch {
	case r.subquery && t.Collection:
		if !r.prevKeyPath {
			r.runStart = len(r.frags)
		}
		r.frags = append(r.frags, r.sp()+"$obj")
		r.lastKeyPath = "$obj"
	case r.prevKeyPath:
		r.frags = append(r.frags, "."+t.Name)
		r.lastKeyPath += "." + t.Name
	default:
		r.runStart = len(r.frags)
		r.frags = append(r.frags, r.sp()+t.Name)
		r.lastKeyPath = t.Name
	}
	r.prevKeyPath = true
}

// renderRange lowers range membership.
//
// A closed range renders as BETWEEN with both bounds bound as arguments. A
// half-open range has no BETWEEN shape; it re-uses the preceding key-path
// name to synthesize ">= %@ && <name> < %@".
func (r *renderer) renderRange(t token.Range) error {
	if t.Inclusive {
		r.frags = append(r.frags, r.sp()+"BETWEEN {%@, %@}")
		r.args = append(r.args, bridge(t.Low), bridge(t.High))
		return nil
	}
	if r.lastKeyPath == "" {
		return ErrNoKeyPathForRange
	}
	r.frags = append(r.frags, fmt.Sprintf("%s>= %%@ && %s < %%@", r.sp(), r.lastKeyPath))
	r.args = append(r.args, bridge(t.Low), bridge(t.High))
	return nil
}

// insertBeforeKeyPathRun splices text immediately before the rendering of
// the preceding key-path run, after its leading separator. Containment
// renders as "value IN keypath", not "keypath IN value".
func (r *renderer) insertBeforeKeyPathRun(text string) {
	frag := r.frags[r.runStart]
	if strings.HasPrefix(frag, " ") {
		r.frags[r.runStart] = " " + text + frag[1:]
	} else {
		r.frags[r.runStart] = text + frag
	}
}

// bridge converts an operand to its engine-facing representation. A nil
// operand still binds: the argument is nil.
func bridge(v interface{ Bridge() any }) any {
	if v == nil {
		return nil
	}
	return v.Bridge()
}
