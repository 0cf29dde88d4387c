package runner

import "fmt"

// ExitError reports a target invocation that exited non-zero or could not run.
type ExitError struct {
	Command string
	Code    int
	Output  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("running %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command returned non-zero exit status (%d): %s", e.Code, e.Command)
}

func (e *ExitError) Unwrap() error { return e.Err }

// MismatchError reports output that differs from the expected file.
type MismatchError struct {
	Command  string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("command returned unexpected output: %s", e.Command)
}
