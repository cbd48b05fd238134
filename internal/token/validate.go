package token

import (
	"errors"
	"fmt"
)

// Structural violations detected by Validate. The builder's typed surface
// makes most of these unreachable, but the compiler never trusts a sequence:
// an invalid sequence fails outright rather than being repaired.
var (
	ErrEmptySequence      = errors.New("empty token sequence")
	ErrNoPrecedingKeyPath = errors.New("no preceding key-path token")
	ErrDanglingCompound   = errors.New("compound connective without both sides")
	ErrMisplacedAggregate = errors.New("aggregation without preceding collection key-path")
)

// Validate checks the structural well-formedness of a finished token
// sequence before compilation.
//
// Rules:
//  1. The sequence is non-empty
//  2. Range and CollectionContains are preceded by a key-path; containment
//     additionally requires the key-path to denote a collection
//  3. Aggregation immediately follows a collection key-path
//  4. Compound connectives have tokens on both sides
//
// Validate is a pure function with no side effects. Violations fail fast:
// the sequence is never reordered or silently corrected.
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return ErrEmptySequence
	}

	var lastKeyPath *KeyPath
	for i, tok := range tokens {
		switch t := tok.(type) {
		case KeyPath:
			kp := t
			lastKeyPath = &kp

		case Range:
			if lastKeyPath == nil {
				return fmt.Errorf("token %d: range containment: %w", i, ErrNoPrecedingKeyPath)
			}

		case CollectionContains:
			if lastKeyPath == nil {
				return fmt.Errorf("token %d: collection containment: %w", i, ErrNoPrecedingKeyPath)
			}
			if !lastKeyPath.Collection {
				return fmt.Errorf("token %d: containment target %q is not a collection key-path", i, lastKeyPath.Name)
			}

		case Aggregation:
			prev, ok := previousKeyPath(tokens, i)
			if !ok || !prev.Collection {
				return fmt.Errorf("token %d: %s: %w", i, t.Op.Suffix(), ErrMisplacedAggregate)
			}

		case Compound:
			if i == 0 || i == len(tokens)-1 {
				return fmt.Errorf("token %d: %w", i, ErrDanglingCompound)
			}
		}
	}
	return nil
}

// previousKeyPath returns the token immediately before index i when it is a
// key-path.
func previousKeyPath(tokens []Token, i int) (KeyPath, bool) {
	if i == 0 {
		return KeyPath{}, false
	}
	kp, ok := tokens[i-1].(KeyPath)
	return kp, ok
}

// Collections returns the distinct collection key-path names referenced by
// the sequence, in first-appearance order. Sub-query extraction uses this to
// identify the single collection a boolean sub-expression ranges over.
func Collections(tokens []Token) []string {
	var names []string
	seen := map[string]bool{}
	for _, tok := range tokens {
		kp, ok := tok.(KeyPath)
		if !ok || !kp.Collection {
			continue
		}
		if !seen[kp.Name] {
			seen[kp.Name] = true
			names = append(names, kp.Name)
		}
	}
	return names
}
