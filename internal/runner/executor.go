package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Executor runs a command and returns its combined stdout and stderr.
// A non-zero exit is reported through exitCode, not err; err is reserved
// for failures to start or wait on the process.
type Executor interface {
	Run(ctx context.Context, dir string, argv []string) (output string, exitCode int, err error)
}

// OSExecutor runs commands on the host.
type OSExecutor struct{}

func (OSExecutor) Run(ctx context.Context, dir string, argv []string) (string, int, error) {
	if len(argv) == 0 {
		return "", 0, fmt.Errorf("empty argv")
	}
	// #nosec G204 -- argv comes from the fixed scenario table.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, err
	}
	return string(out), 0, nil
}
