package probe

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

//go:embed probe.py
var probeScript string

const probeMarker = "@@calccheck-probe@@"

// FunctionProber reports whether a script defines a top-level attribute by
// loading it as a module in a separate interpreter process.
type FunctionProber struct {
	python string
	log    *slog.Logger
}

// NewFunctionProber creates a prober that loads scripts with the given interpreter.
func NewFunctionProber(python string, log *slog.Logger) *FunctionProber {
	return &FunctionProber{python: python, log: log}
}

// HasFunction loads path and reports whether it has an attribute called name.
// Load failures of any kind are logged and reported as false.
func (p *FunctionProber) HasFunction(ctx context.Context, path, name string) bool {
	p.log.Info(fmt.Sprintf("Checking whether function %s is in %s", name, path))

	found, err := p.load(ctx, path, name)
	if err != nil {
		p.log.Error(fmt.Sprintf("Error loading %s: %v", path, err))
		return false
	}

	p.log.Info(fmt.Sprintf("--> %s", pyBool(found)))
	return found
}

func (p *FunctionProber) load(ctx context.Context, path, name string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	// #nosec G204 -- interpreter and target come from harness configuration.
	cmd := exec.CommandContext(ctx, p.python, "-c", probeScript, abs, name)
	cmd.Dir = filepath.Dir(abs)

	out, err := cmd.CombinedOutput()
	verdict, ok := lastVerdict(string(out))
	if !ok {
		if err != nil {
			return false, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
		}
		return false, fmt.Errorf("probe produced no verdict")
	}
	return parseVerdict(verdict)
}

// lastVerdict returns the text after the last marker line in out.
func lastVerdict(out string) (string, bool) {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r")
		if rest, ok := strings.CutPrefix(line, probeMarker+" "); ok {
			return rest, true
		}
	}
	return "", false
}

func parseVerdict(v string) (bool, error) {
	kind, detail, _ := strings.Cut(v, " ")
	switch kind {
	case "found":
		return detail == "1", nil
	case "error":
		return false, fmt.Errorf("%s", detail)
	default:
		return false, fmt.Errorf("unrecognized probe verdict %q", v)
	}
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
