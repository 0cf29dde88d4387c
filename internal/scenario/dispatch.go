package scenario

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bartekus/calccheck/internal/capability"
	"github.com/bartekus/calccheck/internal/runner"
)

// ErrNoScenario is returned for a case the table does not recognize.
var ErrNoScenario = errors.New("did not find a valid testing scenario")

// Checker runs one verified step. *runner.Runner implements it.
type Checker interface {
	Check(ctx context.Context, step runner.Step) error
}

// Dispatcher selects the scenario for a case and runs its checks in order.
type Dispatcher struct {
	table        *Table
	checker      Checker
	expectedPath func(string) string
	log          *slog.Logger
}

// NewDispatcher wires a table to a checker. expectedPath maps an
// expected-results file name to its location on disk.
func NewDispatcher(table *Table, checker Checker, expectedPath func(string) string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{table: table, checker: checker, expectedPath: expectedPath, log: log}
}

// Dispatch runs the scenario for c, stopping at the first failing check.
func (d *Dispatcher) Dispatch(ctx context.Context, c capability.Case) error {
	s, ok := d.table.Lookup(c)
	if !ok {
		// Either the target is broken or it has a combination of
		// capabilities no scenario covers.
		d.log.Error("Did not find a valid testing scenario -- fail")
		return ErrNoScenario
	}

	for _, step := range s.Steps(d.expectedPath) {
		if err := d.checker.Check(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
