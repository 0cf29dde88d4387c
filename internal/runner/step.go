package runner

import "strconv"

// IterationArg is replaced by "--seed <n>" with the 1-based iteration number.
const IterationArg = "{i}"

// Step is one verified check: run the target Count times with Args and
// compare the joined output against the Expected file.
type Step struct {
	Expected string
	Count    int
	Args     []string
}

func (s Step) count() int {
	if s.Count < 1 {
		return 1
	}
	return s.Count
}

// Argv builds the command line for the given 1-based iteration.
func (s Step) Argv(interpreter, target string, iteration int) []string {
	argv := make([]string, 0, len(s.Args)+3)
	argv = append(argv, interpreter, target)
	for _, a := range s.Args {
		if a == IterationArg {
			argv = append(argv, "--seed", strconv.Itoa(iteration))
			continue
		}
		argv = append(argv, a)
	}
	return argv
}
