package petrel

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/petreldb/petrel/internal/render"
	"github.com/petreldb/petrel/literal"
	"github.com/petreldb/petrel/schema"
)

// Predicate is a compiled predicate: the expression text with positional
// "%@" placeholders plus the ordered bridged arguments.
//
// The pair is immutable once returned and the placeholder count always
// equals len(Args). Values are never interpolated into Expr.
type Predicate struct {
	Expr string
	Args []any
}

// Compile runs build against a builder focused on obj and renders the
// resulting expression.
//
// All faults surface here: unknown fields and kind mismatches recorded
// during construction, sub-query extraction failures, and structural
// violations found while rendering. There is no partial success - on error
// the zero Predicate is returned.
func Compile(obj *schema.Object, build func(Object) Bool) (Predicate, error) {
	if obj == nil {
		return Predicate{}, &BuildError{Code: ErrCodeEmptyPredicate, Message: "nil object type"}
	}

	b := build(Object{obj: obj})
	if b.n.err != nil {
		return Predicate{}, b.n.err
	}
	if len(b.n.tokens) == 0 {
		return Predicate{}, &BuildError{Code: ErrCodeEmptyPredicate, Message: "build produced no expression"}
	}

	expr, args, err := render.Compile(b.n.tokens, render.Options{})
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Expr: expr, Args: args}, nil
}

// fingerprintDomain separates predicate fingerprints from any other SHA-256
// use. The version suffix enables future algorithm migration.
const fingerprintDomain = "petrel/predicate/v1"

// Fingerprint computes a stable content hash of the predicate.
//
// Format: SHA256(domain + 0x00 + expr + 0x00 + canonical(arg) + 0x00 ...).
// The null separators prevent boundary ambiguity between fields. Arguments
// hash via their canonical form, so two predicates with Unicode-equivalent
// string arguments fingerprint identically.
func (p Predicate) Fingerprint() (string, error) {
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(p.Expr))
	h.Write([]byte{0x00})
	for i, arg := range p.Args {
		canonical, err := literal.MarshalCanonical(arg)
		if err != nil {
			return "", fmt.Errorf("fingerprint predicate: arg %d: %w", i, err)
		}
		h.Write(canonical)
		h.Write([]byte{0x00})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
