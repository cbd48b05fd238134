package petrel

import (
	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
	"github.com/petreldb/petrel/schema"
)

// node is the persistent core every typed builder wraps: an append-only
// token sequence plus the first construction fault, if any.
//
// Every operation copies; builders are immutable values and may be shared
// across goroutines freely. Once a fault is recorded all further operations
// are no-ops and Compile surfaces the fault.
type node struct {
	tokens []token.Token
	err    error
}

// with returns a new node with tokens appended. The receiver is never
// mutated: sibling builders built from a shared prefix stay independent.
func (n node) with(ts ...token.Token) node {
	if n.err != nil {
		return n
	}
	next := make([]token.Token, 0, len(n.tokens)+len(ts))
	next = append(next, n.tokens...)
	next = append(next, ts...)
	return node{tokens: next}
}

// fail records a construction fault. The first fault wins.
func (n node) fail(err error) node {
	if n.err != nil {
		return n
	}
	return node{tokens: n.tokens, err: err}
}

// Object is a builder focused on an object-typed value: the query root or a
// nested object reached through field access. Field accessors consult the
// schema declaration, append a key-path token, and retype the builder to
// the field's value kind.
type Object struct {
	n   node
	obj *schema.Object
}

// field resolves a named field, checking the declaration with ok, and
// appends its key-path token. Faults are carried in the returned node and
// surface at Compile.
func (o Object) field(name, want string, ok func(schema.Field) bool) (schema.Field, node) {
	if o.n.err != nil {
		return schema.Field{}, o.n
	}
	if o.obj == nil {
		return schema.Field{}, o.n.fail(&BuildError{Code: ErrCodeEmptyPredicate, Message: "builder has no object focus"})
	}
	f, found := o.obj.Field(name)
	if !found {
		return schema.Field{}, o.n.fail(newUnknownFieldError(o.obj.Name, name))
	}
	if !ok(f) {
		return schema.Field{}, o.n.fail(newKindMismatchError(o.obj.Name, name, want, describe(f)))
	}
	return f, o.n.with(token.KeyPath{Name: name, Collection: f.Collection || f.Map})
}

// describe renders a field declaration for kind-mismatch diagnostics.
func describe(f schema.Field) string {
	switch {
	case f.Collection:
		return "list of " + f.Kind.String()
	case f.Map:
		return "map of " + f.Kind.String()
	default:
		return f.Kind.String()
	}
}

// scalar matches a plain (non-collection, non-map) field of one kind.
func scalar(kind schema.Kind) func(schema.Field) bool {
	return func(f schema.Field) bool {
		return f.Kind == kind && !f.Collection && !f.Map
	}
}

// list matches a to-many field of one element kind.
func list(kind schema.Kind) func(schema.Field) bool {
	return func(f schema.Field) bool {
		return f.Kind == kind && f.Collection && !f.Map
	}
}

// Str focuses a string field.
func (o Object) Str(name string) Str {
	_, n := o.field(name, "string", scalar(schema.KindString))
	return Str{Equatable[literal.String]{n}}
}

// Int focuses an integer field.
func (o Object) Int(name string) Ordered[literal.Int] {
	_, n := o.field(name, "int", scalar(schema.KindInt))
	return Ordered[literal.Int]{Equatable[literal.Int]{n}}
}

// Float focuses a floating-point field.
func (o Object) Float(name string) Ordered[literal.Float] {
	_, n := o.field(name, "float", scalar(schema.KindFloat))
	return Ordered[literal.Float]{Equatable[literal.Float]{n}}
}

// Timestamp focuses a timestamp field.
func (o Object) Timestamp(name string) Ordered[literal.Timestamp] {
	_, n := o.field(name, "timestamp", scalar(schema.KindTimestamp))
	return Ordered[literal.Timestamp]{Equatable[literal.Timestamp]{n}}
}

// Bool focuses a boolean field.
func (o Object) Bool(name string) Equatable[literal.Bool] {
	_, n := o.field(name, "bool", scalar(schema.KindBool))
	return Equatable[literal.Bool]{n}
}

// UUID focuses a UUID field.
func (o Object) UUID(name string) Equatable[literal.UUID] {
	_, n := o.field(name, "uuid", scalar(schema.KindUUID))
	return Equatable[literal.UUID]{n}
}

// Obj focuses a to-one object field, including optional-wrapped objects.
// The returned builder exposes the referenced object's fields; consecutive
// accesses dot-join ("address.city").
func (o Object) Obj(name string) Object {
	f, n := o.field(name, "object", scalar(schema.KindObject))
	return Object{n: n, obj: f.Object}
}

// Objects focuses a to-many relationship of objects.
func (o Object) Objects(name string) List {
	f, n := o.field(name, "list of objects", list(schema.KindObject))
	return List{n: n, elem: f.Object}
}

// Strs focuses a collection of strings.
func (o Object) Strs(name string) ComparableList[literal.String] {
	_, n := o.field(name, "list of string", list(schema.KindString))
	return ComparableList[literal.String]{n: n, kp: token.KeyPath{Name: name, Collection: true}}
}

// Ints focuses a collection of integers.
func (o Object) Ints(name string) OrderedList[literal.Int] {
	_, n := o.field(name, "list of int", list(schema.KindInt))
	return OrderedList[literal.Int]{ComparableList[literal.Int]{n: n, kp: token.KeyPath{Name: name, Collection: true}}}
}

// Floats focuses a collection of floats.
func (o Object) Floats(name string) OrderedList[literal.Float] {
	_, n := o.field(name, "list of float", list(schema.KindFloat))
	return OrderedList[literal.Float]{ComparableList[literal.Float]{n: n, kp: token.KeyPath{Name: name, Collection: true}}}
}

// Timestamps focuses a collection of timestamps.
func (o Object) Timestamps(name string) OrderedList[literal.Timestamp] {
	_, n := o.field(name, "list of timestamp", list(schema.KindTimestamp))
	return OrderedList[literal.Timestamp]{ComparableList[literal.Timestamp]{n: n, kp: token.KeyPath{Name: name, Collection: true}}}
}

// Map focuses a string-keyed map field.
func (o Object) Map(name string) Map {
	f, n := o.field(name, "map", func(f schema.Field) bool { return f.Map })
	return Map{n: n, valueKind: f.Kind}
}

// toValue converts a typed operand to the sealed literal union. Every
// constraint member implements literal.Value, so the assertion cannot fail.
func toValue[T literal.Comparable](v T) literal.Value {
	return any(v).(literal.Value)
}
