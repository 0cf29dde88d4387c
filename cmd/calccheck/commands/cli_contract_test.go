package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	for _, want := range []string{"--force", "version", "help"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in root help", want)
		}
	}
}

func TestCLIVersion(t *testing.T) {
	t.Setenv("CALCCHECK_VERSION", "1.0.0")

	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := b.String(); got != "calccheck version 1.0.0\n" {
		t.Errorf("unexpected version output %q", got)
	}
}

func TestCLIRejectsPositionalArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(bytes.NewBufferString(""))
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}
