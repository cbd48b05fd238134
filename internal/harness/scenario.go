package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance case: a builder program compiled against
// a schema object, with an optional inline expectation.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Schema is the directory of CUE schema files, relative to the
	// scenario file location.
	Schema string `yaml:"schema"`

	// Object names the schema object type the program builds against.
	Object string `yaml:"object"`

	// Query names a registered builder program (see Queries).
	Query string `yaml:"query"`

	// Expect is the expected compiled output. If nil, only the golden
	// snapshot is checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected compiled predicate.
type Expect struct {
	// Expr is the expected expression text, placeholders included.
	Expr string `yaml:"expr"`

	// Args are the expected bound arguments in order. YAML integers
	// compare against int64 bindings.
	Args []any `yaml:"args"`
}

// LoadScenario reads and parses a scenario YAML file. The schema path
// resolves relative to the scenario file's directory. Unknown fields are
// rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if scenario.Schema != "" && !filepath.IsAbs(scenario.Schema) {
		scenario.Schema = filepath.Join(filepath.Dir(path), scenario.Schema)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml scenario under dir, sorted by file name so test
// ordering is stable.
func LoadDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Schema == "" {
		return fmt.Errorf("schema directory is required")
	}
	if s.Object == "" {
		return fmt.Errorf("object is required")
	}
	if s.Query == "" {
		return fmt.Errorf("query is required")
	}
	if info, err := os.Stat(s.Schema); err != nil || !info.IsDir() {
		return fmt.Errorf("schema directory not found: %s", s.Schema)
	}
	if s.Expect != nil && s.Expect.Expr == "" {
		return fmt.Errorf("expect: expr is required")
	}
	return nil
}
