package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/calccheck/internal/capability"
	"github.com/bartekus/calccheck/internal/logging"
	"github.com/bartekus/calccheck/internal/runner"
)

// recordingChecker records steps and fails on the configured call (1-based).
type recordingChecker struct {
	steps  []runner.Step
	failAt int
}

func (r *recordingChecker) Check(_ context.Context, step runner.Step) error {
	r.steps = append(r.steps, step)
	if r.failAt == len(r.steps) {
		return errors.New("check failed")
	}
	return nil
}

func expectedIn(dir string) func(string) string {
	return func(name string) string { return filepath.Join(dir, name) }
}

func defaultTableT(t *testing.T) *Table {
	t.Helper()
	tbl, err := Default()
	require.NoError(t, err)
	return tbl
}

func TestDefault_RecognizedCases(t *testing.T) {
	tbl := defaultTableT(t)

	assert.Equal(t, []capability.Case{1, 3, 5, 9, 25, 57, 59, 61, 63}, tbl.Cases())
}

func TestDispatch_Case1(t *testing.T) {
	chk := &recordingChecker{}
	d := NewDispatcher(defaultTableT(t), chk, expectedIn("tests"), logging.Discard())

	require.NoError(t, d.Dispatch(context.Background(), 1))

	require.Len(t, chk.steps, 1)
	assert.Equal(t, runner.Step{Expected: filepath.Join("tests", "expected-results-1-original.txt")}, chk.steps[0])
}

func TestDispatch_Case57(t *testing.T) {
	chk := &recordingChecker{}
	d := NewDispatcher(defaultTableT(t), chk, expectedIn("tests"), logging.Discard())

	require.NoError(t, d.Dispatch(context.Background(), 57))

	require.Len(t, chk.steps, 3)
	assert.Equal(t, filepath.Join("tests", "expected-results-57-seed.txt"), chk.steps[0].Expected)
	assert.Empty(t, chk.steps[0].Args)
	assert.Equal(t, filepath.Join("tests", "expected-results-57-seed-debug.txt"), chk.steps[1].Expected)
	assert.Equal(t, []string{"--debug"}, chk.steps[1].Args)
	assert.Equal(t, filepath.Join("tests", "expected-results-57-seed-seeds.txt"), chk.steps[2].Expected)
	assert.Equal(t, []string{"--debug", runner.IterationArg}, chk.steps[2].Args)
	assert.Equal(t, 100, chk.steps[2].Count)
}

func TestDispatch_Case25HasNoSeededRun(t *testing.T) {
	chk := &recordingChecker{}
	d := NewDispatcher(defaultTableT(t), chk, expectedIn("tests"), logging.Discard())

	require.NoError(t, d.Dispatch(context.Background(), 25))

	require.Len(t, chk.steps, 2)
	assert.Equal(t, filepath.Join("tests", "expected-results-25-logging-debug.txt"), chk.steps[1].Expected)
}

func TestDispatch_StopsAtFirstFailure(t *testing.T) {
	chk := &recordingChecker{failAt: 2}
	d := NewDispatcher(defaultTableT(t), chk, expectedIn("tests"), logging.Discard())

	err := d.Dispatch(context.Background(), 63)

	require.EqualError(t, err, "check failed")
	assert.Len(t, chk.steps, 2)
}

func TestDispatch_UnknownCase(t *testing.T) {
	for _, c := range []capability.Case{0, 2, 7, 17, 33, 62, 64, 100} {
		t.Run(fmt.Sprint(int(c)), func(t *testing.T) {
			var log bytes.Buffer
			chk := &recordingChecker{}
			d := NewDispatcher(defaultTableT(t), chk, expectedIn("tests"), logging.New(&log, nil))

			err := d.Dispatch(context.Background(), c)

			assert.ErrorIs(t, err, ErrNoScenario)
			assert.Empty(t, chk.steps)
			assert.Equal(t, "ERROR: Did not find a valid testing scenario -- fail\n", log.String())
		})
	}
}

func TestDefault_Plan(t *testing.T) {
	tbl := defaultTableT(t)

	var b strings.Builder
	for _, c := range tbl.Cases() {
		s, _ := tbl.Lookup(c)
		fmt.Fprintf(&b, "case %s\n", c)
		for _, step := range s.Steps(expectedIn("tests")) {
			argv := step.Argv("python3", "./calculator.py", 1)
			fmt.Fprintf(&b, "  %s x%d -> %s\n", strings.Join(argv, " "), max(step.Count, 1), step.Expected)
		}
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_plan", []byte(b.String()))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "scenarios:\n  - case: 1\n    base: x\n    check: []\n",
			want: "failed to parse scenario table",
		},
		{
			name: "duplicate",
			yaml: "scenarios:\n  - {case: 1, base: a, checks: [{variant: plain}]}\n  - {case: 1, base: b, checks: [{variant: plain}]}\n",
			want: "duplicate case 1",
		},
		{
			name: "bad variant",
			yaml: "scenarios:\n  - {case: 1, base: a, checks: [{variant: fancy}]}\n",
			want: `unknown variant "fancy"`,
		},
		{
			name: "no checks",
			yaml: "scenarios:\n  - {case: 3, base: a}\n",
			want: "case 3 has no checks",
		},
		{
			name: "out of range",
			yaml: "scenarios:\n  - {case: 64, base: a, checks: [{variant: plain}]}\n",
			want: "case 64 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScenario_ExpectedFile(t *testing.T) {
	s := Scenario{Base: "63-all"}

	assert.Equal(t, "expected-results-63-all.txt", s.ExpectedFile(Plain))
	assert.Equal(t, "expected-results-63-all-debug.txt", s.ExpectedFile(Debug))
	assert.Equal(t, "expected-results-63-all-seeds.txt", s.ExpectedFile(Seeds))
}
