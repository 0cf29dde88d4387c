package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Runner executes the target and verifies its output.
type Runner struct {
	interpreter string
	target      string
	dir         string
	exec        Executor
	log         *slog.Logger
}

// Options configures a Runner.
type Options struct {
	Interpreter string
	Target      string
	// Dir is the working directory of every invocation. Empty means the
	// current directory.
	Dir      string
	Executor Executor
	Logger   *slog.Logger
}

// New creates a Runner. A nil Executor defaults to OSExecutor.
func New(opts Options) *Runner {
	ex := opts.Executor
	if ex == nil {
		ex = OSExecutor{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		interpreter: opts.Interpreter,
		target:      opts.Target,
		dir:         opts.Dir,
		exec:        ex,
		log:         log,
	}
}

// Check runs step and compares the joined, trimmed output against the
// trimmed contents of step.Expected. It stops at the first non-zero exit.
func (r *Runner) Check(ctx context.Context, step Step) error {
	var outputs []string
	var cmdLine string

	for i := 1; i <= step.count(); i++ {
		argv := step.Argv(r.interpreter, r.target, i)
		cmdLine = strings.Join(argv, " ")
		r.log.Info(fmt.Sprintf("Running test iteration %d: %s", i, cmdLine))

		out, code, err := r.exec.Run(ctx, r.dir, argv)
		if err != nil {
			r.log.Error(fmt.Sprintf("Command could not be run: %s: %v", cmdLine, err))
			return &ExitError{Command: cmdLine, Code: code, Output: out, Err: err}
		}
		if code != 0 {
			r.log.Error(fmt.Sprintf("Command returned non-zero exit status (%d): %s", code, cmdLine))
			return &ExitError{Command: cmdLine, Code: code, Output: out}
		}

		if out != "" {
			outputs = append(outputs, strings.TrimSpace(out))
		}
	}

	actual := strings.TrimSpace(strings.Join(outputs, "\n"))

	data, err := os.ReadFile(step.Expected) //nolint:gosec // expected files come from the scenario table
	if err != nil {
		return fmt.Errorf("reading expected results: %w", err)
	}
	expected := strings.TrimSpace(string(data))

	if expected != actual {
		mm := &MismatchError{Command: cmdLine, Expected: expected, Actual: actual}
		r.log.Error(fmt.Sprintf("Command returned unexpected output: %s", cmdLine))
		r.log.Error("Expected output:\n" + Indent(expected, "    "))
		r.log.Error("Actual output:\n" + Indent(actual, "    "))
		r.log.Error("Test failure")
		return mm
	}
	return nil
}

// Indent prefixes every line of s that is not whitespace-only.
func Indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}
