// Package testutil provides shared schema fixtures for tests.
package testutil

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/require"

	"github.com/petreldb/petrel/schema"
)

// SchemaSource declares the fixture object types. It covers every field
// shape the builder can focus: primitives, optionals, to-one and to-many
// object references, primitive lists, and string-keyed maps.
const SchemaSource = `
schema: {
	Person: {
		id:       "uuid"
		name:     "string"
		age:      "int"
		height:   "float"
		active:   "bool"
		joined:   "timestamp"
		nickname: "string?"
		dog:      "Dog?"
		address:  "Address"
		friends:  {list: "Person"}
		pets:     {list: "Dog"}
		tags:     {list: "string"}
		scores:   {list: "int"}
		ratings:  {list: "float"}
		logins:   {list: "timestamp"}
		props:    {map: "string"}
		counts:   {map: "int"}
	}
	Dog: {
		name: "string"
		age:  "int"
	}
	Address: {
		city: "string"
		zip:  "string"
	}
}
`

// Registry parses the fixture schema. Failures abort the test.
func Registry(t *testing.T) *schema.Registry {
	t.Helper()
	v := cuecontext.New().CompileString(SchemaSource)
	require.NoError(t, v.Err())
	reg, err := schema.Parse(v)
	require.NoError(t, err)
	return reg
}

// Person returns the fixture Person object type.
func Person(t *testing.T) *schema.Object {
	t.Helper()
	return lookup(t, "Person")
}

// Dog returns the fixture Dog object type.
func Dog(t *testing.T) *schema.Object {
	t.Helper()
	return lookup(t, "Dog")
}

func lookup(t *testing.T, name string) *schema.Object {
	t.Helper()
	obj, ok := Registry(t).Lookup(name)
	require.True(t, ok, "fixture schema has no object %q", name)
	return obj
}
