// Package harness drives conformance scenarios for the predicate compiler.
//
// A scenario is a YAML file naming a schema directory, an object type, and a
// registered builder program, optionally with the expected compiled output
// inline. Scenarios run end-to-end: the schema loads from CUE, the program
// builds against the object focus, and the compiled predicate is compared
// against the expectation and a golden snapshot.
//
// Golden files live in testdata/golden and regenerate with:
//
//	go test ./internal/harness -update
package harness
