package petrel

import (
	"errors"
	"fmt"
	"strings"
)

// BuildError represents a fault detected while constructing or compiling a
// predicate.
//
// Build errors include:
//   - Unknown field: field access names no stored property
//   - Kind mismatch: accessor does not match the field's declared kind
//   - Multi-collection sub-query: a sub-query ranges over more than one
//     distinct collection
//   - No-collection sub-query: a sub-query ranges over no collection at all
//
// All failures surface at construction/compilation time, never at execution
// time; callers should treat them as programming errors to fix, not
// transient conditions to retry.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// Object names the object type under focus, if any.
	Object string

	// Field names the affected field, if any.
	Field string

	// Collections lists the distinct collections referenced, for
	// sub-query errors.
	Collections []string
}

// BuildErrorCode categorizes build errors.
type BuildErrorCode string

const (
	// ErrCodeUnknownField indicates a field access that names no stored
	// property of the focused object type.
	ErrCodeUnknownField BuildErrorCode = "UNKNOWN_FIELD"

	// ErrCodeKindMismatch indicates an accessor whose kind does not match
	// the field's declaration.
	ErrCodeKindMismatch BuildErrorCode = "KIND_MISMATCH"

	// ErrCodeMultiCollectionSubquery indicates a sub-query whose boolean
	// expression references more than one distinct collection.
	ErrCodeMultiCollectionSubquery BuildErrorCode = "MULTI_COLLECTION_SUBQUERY"

	// ErrCodeNoCollectionSubquery indicates a sub-query whose boolean
	// expression references no collection.
	ErrCodeNoCollectionSubquery BuildErrorCode = "NO_COLLECTION_SUBQUERY"

	// ErrCodeEmptyPredicate indicates compilation of a zero-value builder.
	ErrCodeEmptyPredicate BuildErrorCode = "EMPTY_PREDICATE"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Object != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s (object=%s, field=%s)", e.Code, e.Message, e.Object, e.Field)
	}
	if len(e.Collections) > 0 {
		return fmt.Sprintf("%s: %s (collections=%s)", e.Code, e.Message, strings.Join(e.Collections, ","))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownFieldError reports whether err is an unknown-field build error.
// Uses errors.As to handle wrapped errors.
func IsUnknownFieldError(err error) bool {
	return hasCode(err, ErrCodeUnknownField)
}

// IsKindMismatchError reports whether err is a kind-mismatch build error.
func IsKindMismatchError(err error) bool {
	return hasCode(err, ErrCodeKindMismatch)
}

// IsMultiCollectionSubqueryError reports whether err is a multi-collection
// sub-query rejection.
func IsMultiCollectionSubqueryError(err error) bool {
	return hasCode(err, ErrCodeMultiCollectionSubquery)
}

// IsNoCollectionSubqueryError reports whether err is a no-collection
// sub-query rejection.
func IsNoCollectionSubqueryError(err error) bool {
	return hasCode(err, ErrCodeNoCollectionSubquery)
}

func hasCode(err error, code BuildErrorCode) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// newUnknownFieldError creates a BuildError for a missing field.
func newUnknownFieldError(object, field string) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnknownField,
		Message: "no such field",
		Object:  object,
		Field:   field,
	}
}

// newKindMismatchError creates a BuildError for an accessor/declaration
// mismatch.
func newKindMismatchError(object, field, want, got string) *BuildError {
	return &BuildError{
		Code:    ErrCodeKindMismatch,
		Message: fmt.Sprintf("expected %s, declared %s", want, got),
		Object:  object,
		Field:   field,
	}
}

// newMultiCollectionSubqueryError creates a BuildError for a sub-query over
// more than one distinct collection. The builder never silently picks one.
func newMultiCollectionSubqueryError(collections []string) *BuildError {
	return &BuildError{
		Code:        ErrCodeMultiCollectionSubquery,
		Message:     "sub-query references more than one collection",
		Collections: collections,
	}
}

// newNoCollectionSubqueryError creates a BuildError for a sub-query over no
// collection.
func newNoCollectionSubqueryError() *BuildError {
	return &BuildError{
		Code:    ErrCodeNoCollectionSubquery,
		Message: "sub-query references no collection",
	}
}
