// Package schema is the schema-reflection collaborator behind petrel's
// typed predicate builder.
//
// It maps a logical field name to its stored property declaration: the
// property name, its value kind, and whether the field is optional, a
// to-many collection, or a string-keyed map. The builder consults these
// declarations at construction time to gate which operators are legal for a
// field; the capability classification itself (Comparable/Orderable) lives
// on Kind.
//
// Object definitions are written in CUE and loaded with Load (directory) or
// Parse (a built cue.Value):
//
//	schema: {
//		Person: {
//			name:    "string"
//			age:     "int"
//			dog:     "Dog?"
//			tags:    {list: "string"}
//			friends: {list: "Person"}
//			props:   {map: "string"}
//		}
//		Dog: {
//			name: "string"
//			age:  "int"
//		}
//	}
//
// Object references may be cyclic. Registries are immutable after loading
// and safe for concurrent use.
package schema
