package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/petreldb/petrel"
	"github.com/petreldb/petrel/literal"
	"github.com/petreldb/petrel/schema"
)

// Snapshot captures one compiled predicate for golden comparison. Arguments
// serialize via their canonical form so snapshots are byte-stable across
// processes.
type Snapshot struct {
	Scenario    string
	Object      string
	Expr        string
	Args        []any
	Fingerprint string
}

// Marshal renders the snapshot as deterministic line-oriented text.
func (s Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", s.Scenario)
	fmt.Fprintf(&buf, "object: %s\n", s.Object)
	fmt.Fprintf(&buf, "expr: %s\n", s.Expr)
	for i, arg := range s.Args {
		canonical, err := literal.MarshalCanonical(arg)
		if err != nil {
			return nil, fmt.Errorf("snapshot arg %d: %w", i, err)
		}
		fmt.Fprintf(&buf, "arg[%d]: %s\n", i, canonical)
	}
	fmt.Fprintf(&buf, "fingerprint: %s\n", s.Fingerprint)
	return buf.Bytes(), nil
}

// Run executes a scenario: loads its schema, resolves the object type and
// the registered query, and compiles the predicate.
func Run(scenario *Scenario, queries Registry) (petrel.Predicate, error) {
	reg, err := schema.Load(scenario.Schema)
	if err != nil {
		return petrel.Predicate{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	obj, ok := reg.Lookup(scenario.Object)
	if !ok {
		return petrel.Predicate{}, fmt.Errorf("scenario %s: unknown object %q", scenario.Name, scenario.Object)
	}
	build, ok := queries[scenario.Query]
	if !ok {
		return petrel.Predicate{}, fmt.Errorf("scenario %s: unknown query %q", scenario.Name, scenario.Query)
	}
	return petrel.Compile(obj, build)
}

// RunWithGolden executes a scenario, checks the inline expectation if one is
// present, and compares the snapshot against testdata/golden/{name}.golden.
func RunWithGolden(t *testing.T, scenario *Scenario, queries Registry) error {
	t.Helper()

	pred, err := Run(scenario, queries)
	if err != nil {
		return err
	}

	if scenario.Expect != nil {
		assertExpectation(t, scenario, pred)
	}

	fingerprint, err := pred.Fingerprint()
	if err != nil {
		return err
	}

	snapshot := Snapshot{
		Scenario:    scenario.Name,
		Object:      scenario.Object,
		Expr:        pred.Expr,
		Args:        pred.Args,
		Fingerprint: fingerprint,
	}
	data, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}

func assertExpectation(t *testing.T, scenario *Scenario, pred petrel.Predicate) {
	t.Helper()

	if pred.Expr != scenario.Expect.Expr {
		t.Errorf("scenario %s: expr mismatch\n  want: %s\n  got:  %s",
			scenario.Name, scenario.Expect.Expr, pred.Expr)
	}
	if len(pred.Args) != len(scenario.Expect.Args) {
		t.Errorf("scenario %s: want %d args, got %d",
			scenario.Name, len(scenario.Expect.Args), len(pred.Args))
		return
	}
	for i, want := range scenario.Expect.Args {
		if got := pred.Args[i]; !argEqual(want, got) {
			t.Errorf("scenario %s: arg %d mismatch: want %v (%T), got %v (%T)",
				scenario.Name, i, want, want, got, got)
		}
	}
}

// argEqual compares a YAML expectation value against a bound argument. YAML
// decodes integers as int while the compiler binds int64.
func argEqual(want, got any) bool {
	if w, ok := want.(int); ok {
		g, ok := got.(int64)
		return ok && int64(w) == g
	}
	return want == got
}
