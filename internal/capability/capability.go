package capability

import (
	"context"
	"fmt"
	"strings"
)

// Flag is one detectable capability. Its value is its bit weight in a Case.
type Flag int

const (
	Original Flag = 1 << iota
	DivMul
	AddSub
	Logging
	Debug
	Seed
)

// Case is the bitmask of detected flags.
type Case int

var flagNames = map[Flag]string{
	Original: "original",
	DivMul:   "divmul",
	AddSub:   "addsub",
	Logging:  "logging",
	Debug:    "debug",
	Seed:     "seed",
}

func (f Flag) String() string {
	if n, ok := flagNames[f]; ok {
		return n
	}
	return fmt.Sprintf("flag(%d)", int(f))
}

// Flags records the outcome of every check.
type Flags map[Flag]bool

// Case folds the true flags into a bitmask.
func (fs Flags) Case() Case {
	var c Case
	for f, ok := range fs {
		if ok {
			c |= Case(f)
		}
	}
	return c
}

// Has reports whether flag f is set in c.
func (c Case) Has(f Flag) bool {
	return int(c)&int(f) != 0
}

func (c Case) String() string {
	var names []string
	for _, chk := range Checks {
		if c.Has(chk.Flag) {
			names = append(names, chk.Flag.String())
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("%d", int(c))
	}
	return fmt.Sprintf("%d (%s)", int(c), strings.Join(names, "+"))
}

// Check defines a flag as a conjunction of function and string probes.
// Functions are probed before strings; evaluation stops at the first miss.
type Check struct {
	Flag      Flag
	Functions []string
	Strings   []string
}

// Checks is the fixed battery, in evaluation order.
var Checks = []Check{
	{Flag: Original, Functions: []string{"add", "subtract", "main"}},
	{Flag: DivMul, Functions: []string{"divide", "multiply"}},
	{Flag: AddSub, Strings: []string{"Adding then subtracting!", "Subtracting then adding!"}},
	{Flag: Logging, Strings: []string{"import logging", "logging.basicConfig"}},
	{Flag: Debug, Strings: []string{"import argparse", "--debug"}},
	{Flag: Seed, Strings: []string{"import argparse", "--seed"}},
}

// FunctionProber reports whether a script defines a top-level function.
type FunctionProber interface {
	HasFunction(ctx context.Context, path, name string) bool
}

// StringProber reports whether a file contains a literal.
type StringProber interface {
	Contains(path, literal string) (bool, error)
}

// Probes bundles the two probe kinds used by Detect.
type Probes struct {
	Functions FunctionProber
	Strings   StringProber
}

// Detect runs Checks against source and returns the resulting case and flags.
// String probe errors abort detection.
func Detect(ctx context.Context, p Probes, source string) (Case, Flags, error) {
	flags := make(Flags, len(Checks))
	for _, chk := range Checks {
		ok, err := evaluate(ctx, p, source, chk)
		if err != nil {
			return 0, nil, fmt.Errorf("checking %s: %w", chk.Flag, err)
		}
		flags[chk.Flag] = ok
	}
	return flags.Case(), flags, nil
}

func evaluate(ctx context.Context, p Probes, source string, chk Check) (bool, error) {
	for _, fn := range chk.Functions {
		if !p.Functions.HasFunction(ctx, source, fn) {
			return false, nil
		}
	}
	for _, s := range chk.Strings {
		found, err := p.Strings.Contains(source, s)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
