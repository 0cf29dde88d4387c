package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/calccheck/internal/capability"
	"github.com/bartekus/calccheck/internal/runner"
)

//go:embed scenarios.yaml
var defaultTable []byte

// Variant selects which expected-results file a check compares against.
type Variant string

const (
	Plain Variant = "plain"
	Debug Variant = "debug"
	Seeds Variant = "seeds"
)

func (v Variant) suffix() (string, error) {
	switch v {
	case Plain:
		return "", nil
	case Debug:
		return "-debug", nil
	case Seeds:
		return "-seeds", nil
	default:
		return "", fmt.Errorf("unknown variant %q", string(v))
	}
}

// Check is one Command Runner call within a scenario.
type Check struct {
	Variant Variant  `yaml:"variant"`
	Args    []string `yaml:"args,omitempty"`
	Count   int      `yaml:"count,omitempty"`
}

// Scenario is the fixed list of checks run for one case.
type Scenario struct {
	Case   capability.Case `yaml:"case"`
	Base   string          `yaml:"base"`
	Checks []Check         `yaml:"checks"`
}

// ExpectedFile returns the file name of the expected results for v.
func (s Scenario) ExpectedFile(v Variant) string {
	suffix, _ := v.suffix()
	return "expected-results-" + s.Base + suffix + ".txt"
}

// Steps resolves the scenario's checks to runner steps. expectedPath maps an
// expected-results file name to its location.
func (s Scenario) Steps(expectedPath func(string) string) []runner.Step {
	steps := make([]runner.Step, 0, len(s.Checks))
	for _, c := range s.Checks {
		steps = append(steps, runner.Step{
			Expected: expectedPath(s.ExpectedFile(c.Variant)),
			Count:    c.Count,
			Args:     c.Args,
		})
	}
	return steps
}

// Table maps cases to scenarios.
type Table struct {
	byCase map[capability.Case]Scenario
}

type tableFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Default returns the built-in table.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Parse decodes and validates a scenario table. Unknown fields,
// duplicate cases and unknown variants are rejected.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario table: %w", err)
	}

	t := &Table{byCase: make(map[capability.Case]Scenario, len(f.Scenarios))}
	for _, s := range f.Scenarios {
		if err := validate(s); err != nil {
			return nil, err
		}
		if _, dup := t.byCase[s.Case]; dup {
			return nil, fmt.Errorf("scenario table: duplicate case %d", s.Case)
		}
		t.byCase[s.Case] = s
	}
	return t, nil
}

func validate(s Scenario) error {
	if s.Case < 1 || s.Case > 63 {
		return fmt.Errorf("scenario table: case %d out of range", s.Case)
	}
	if s.Base == "" {
		return fmt.Errorf("scenario table: case %d has no base name", s.Case)
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("scenario table: case %d has no checks", s.Case)
	}
	for _, c := range s.Checks {
		if _, err := c.Variant.suffix(); err != nil {
			return fmt.Errorf("scenario table: case %d: %w", s.Case, err)
		}
		if c.Count < 0 {
			return fmt.Errorf("scenario table: case %d: negative count", s.Case)
		}
	}
	return nil
}

// Lookup returns the scenario for c.
func (t *Table) Lookup(c capability.Case) (Scenario, bool) {
	s, ok := t.byCase[c]
	return s, ok
}

// Cases returns the recognized cases in ascending order.
func (t *Table) Cases() []capability.Case {
	cases := make([]capability.Case, 0, len(t.byCase))
	for c := range t.byCase {
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i] < cases[j] })
	return cases
}
