package schema

// Kind classifies the stored value of a field.
//
// Capability classification is attached here:
//   - Comparable kinds support equality operators
//   - Orderable kinds additionally support ordering, range containment, and
//     collection aggregation
//
// Optionality is orthogonal: an optional field propagates its underlying
// kind's capabilities unchanged.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTimestamp
	KindUUID
	KindObject
)

// Comparable reports whether the kind supports equality operators.
// Object-typed fields are traversed, not compared.
func (k Kind) Comparable() bool {
	return k != KindObject
}

// Orderable reports whether the kind supports ordering operators, range
// containment, and aggregation. Every orderable kind is also comparable.
func (k Kind) Orderable() bool {
	switch k {
	case KindInt, KindFloat, KindTimestamp:
		return true
	default:
		return false
	}
}

// String returns the kind's schema-file spelling.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	case KindUUID:
		return "uuid"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KindFromName maps a schema-file type name to a primitive Kind. Object
// references are not primitive names and return false.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "string":
		return KindString, true
	case "int":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "bool":
		return KindBool, true
	case "timestamp":
		return KindTimestamp, true
	case "uuid":
		return KindUUID, true
	default:
		return 0, false
	}
}

// Field describes one stored property of an object.
//
// Kind is the element kind: for a collection it is the kind of the elements,
// for a map the kind of the values (keys are always strings). Object is
// non-nil exactly when Kind is KindObject.
type Field struct {
	Name       string
	Kind       Kind
	Collection bool // to-many relationship or collection property
	Map        bool // string-keyed map property
	Optional   bool
	Object     *Object
}

// Object describes one persisted object type: its name and stored fields.
// Objects may reference each other cyclically via object-typed fields.
type Object struct {
	Name   string
	Fields []Field
}

// Field returns the named field declaration.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry holds the named object types of one loaded schema.
type Registry struct {
	Objects map[string]*Object
}

// Lookup returns the named object type.
func (r *Registry) Lookup(name string) (*Object, bool) {
	obj, ok := r.Objects[name]
	return obj, ok
}
