package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// ParseError represents an error in a schema definition.
type ParseError struct {
	Object  string
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *ParseError) Error() string {
	where := e.Object
	if e.Field != "" {
		where = e.Object + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads all .cue files under dir and parses the object definitions
// found under the top-level "schema" struct.
func Load(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("schema directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("accessing schema directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning schema directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	return Parse(value)
}

// Parse extracts object definitions from a CUE value.
//
// Expected shape:
//
//	schema: {
//		Person: {
//			name:    "string"
//			age:     "int"
//			dog:     "Dog?"              // optional object reference
//			tags:    {list: "string"}    // collection of primitives
//			friends: {list: "Person"}    // to-many relationship
//			props:   {map: "string"}     // string-keyed map
//		}
//		Dog: { ... }
//	}
//
// Primitive type names: string, int, float, bool, timestamp, uuid. Any other
// name is an object reference and must resolve to a sibling definition;
// cyclic references are allowed. A trailing "?" marks the field optional.
// Map values must be primitive kinds.
func Parse(v cue.Value) (*Registry, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("schema value: %w", err)
	}

	schemaVal := v.LookupPath(cue.ParsePath("schema"))
	if !schemaVal.Exists() {
		return nil, &ParseError{Object: "schema", Message: "top-level schema struct is required", Pos: v.Pos()}
	}

	// First pass: allocate every object so references (including cycles)
	// resolve by pointer in the second pass.
	reg := &Registry{Objects: map[string]*Object{}}
	specs := map[string][]fieldSpec{}

	iter, err := schemaVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating schema objects: %w", err)
	}
	for iter.Next() {
		objName := iter.Label()
		if !identPattern.MatchString(objName) {
			return nil, &ParseError{Object: objName, Message: "invalid object name", Pos: iter.Value().Pos()}
		}
		fields, err := parseObjectFields(objName, iter.Value())
		if err != nil {
			return nil, err
		}
		reg.Objects[objName] = &Object{Name: objName}
		specs[objName] = fields
	}
	if len(reg.Objects) == 0 {
		return nil, &ParseError{Object: "schema", Message: "no object definitions found", Pos: schemaVal.Pos()}
	}

	// Second pass: resolve type names to kinds and object pointers.
	for objName, fields := range specs {
		obj := reg.Objects[objName]
		for _, spec := range fields {
			field, err := resolveField(reg, objName, spec)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, field)
		}
	}
	return reg, nil
}

// fieldSpec is an unresolved field declaration from the first parse pass.
type fieldSpec struct {
	name       string
	typeName   string
	collection bool
	isMap      bool
	optional   bool
	pos        token.Pos
}

// parseObjectFields reads the field declarations of one object struct.
func parseObjectFields(objName string, v cue.Value) ([]fieldSpec, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, &ParseError{Object: objName, Message: fmt.Sprintf("object must be a struct: %v", err), Pos: v.Pos()}
	}

	var specs []fieldSpec
	for iter.Next() {
		name := iter.Label()
		if !identPattern.MatchString(name) {
			return nil, &ParseError{Object: objName, Field: name, Message: "invalid field name", Pos: iter.Value().Pos()}
		}
		spec, err := parseFieldSpec(objName, name, iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	// CUE iteration order is already deterministic; sorting makes the
	// contract explicit for golden output.
	sort.Slice(specs, func(i, j int) bool { return specs[i].name < specs[j].name })
	return specs, nil
}

// parseFieldSpec parses one field declaration: either a type-name string or
// a single-key {list: "..."} / {map: "..."} struct.
func parseFieldSpec(objName, fieldName string, v cue.Value) (fieldSpec, error) {
	spec := fieldSpec{name: fieldName, pos: v.Pos()}

	if typeName, err := v.String(); err == nil {
		spec.typeName = typeName
		return normalizeSpec(objName, spec)
	}

	listVal := v.LookupPath(cue.ParsePath("list"))
	mapVal := v.LookupPath(cue.ParsePath("map"))
	switch {
	case listVal.Exists() && mapVal.Exists():
		return spec, &ParseError{Object: objName, Field: fieldName, Message: "field cannot be both list and map", Pos: v.Pos()}
	case listVal.Exists():
		typeName, err := listVal.String()
		if err != nil {
			return spec, &ParseError{Object: objName, Field: fieldName, Message: "list element type must be a string", Pos: listVal.Pos()}
		}
		spec.collection = true
		spec.typeName = typeName
		return normalizeSpec(objName, spec)
	case mapVal.Exists():
		typeName, err := mapVal.String()
		if err != nil {
			return spec, &ParseError{Object: objName, Field: fieldName, Message: "map value type must be a string", Pos: mapVal.Pos()}
		}
		spec.isMap = true
		spec.typeName = typeName
		return normalizeSpec(objName, spec)
	default:
		return spec, &ParseError{Object: objName, Field: fieldName, Message: `field must be a type name or {list: "..."} / {map: "..."}`, Pos: v.Pos()}
	}
}

// normalizeSpec strips the optional marker and validates the type name.
func normalizeSpec(objName string, spec fieldSpec) (fieldSpec, error) {
	name := spec.typeName
	if len(name) > 0 && name[len(name)-1] == '?' {
		spec.optional = true
		name = name[:len(name)-1]
	}
	if !identPattern.MatchString(name) {
		return spec, &ParseError{Object: objName, Field: spec.name, Message: fmt.Sprintf("invalid type name %q", spec.typeName), Pos: spec.pos}
	}
	spec.typeName = name
	return spec, nil
}

// resolveField turns an unresolved spec into a Field, resolving object
// references against the registry.
func resolveField(reg *Registry, objName string, spec fieldSpec) (Field, error) {
	field := Field{
		Name:       spec.name,
		Collection: spec.collection,
		Map:        spec.isMap,
		Optional:   spec.optional,
	}

	if kind, ok := KindFromName(spec.typeName); ok {
		field.Kind = kind
		return field, nil
	}

	target, ok := reg.Objects[spec.typeName]
	if !ok {
		return field, &ParseError{Object: objName, Field: spec.name, Message: fmt.Sprintf("unknown type %q", spec.typeName), Pos: spec.pos}
	}
	if spec.isMap {
		return field, &ParseError{Object: objName, Field: spec.name, Message: "map values must be primitive kinds", Pos: spec.pos}
	}
	field.Kind = KindObject
	field.Object = target
	return field, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
