package config

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNoInterpreter is returned when neither python3 nor python is on PATH.
var ErrNoInterpreter = errors.New("cannot find a python3 or python executable -- giving up")

// Environment variables read by Load.
const (
	EnvWorkDir     = "CALCCHECK_WORKDIR"
	EnvSource      = "CALCCHECK_SOURCE"
	EnvTarget      = "CALCCHECK_TARGET"
	EnvExpectedDir = "CALCCHECK_EXPECTED_DIR"
	EnvPython      = "CALCCHECK_PYTHON"
	EnvLogLevel    = "CALCCHECK_LOG_LEVEL"
	EnvVersion     = "CALCCHECK_VERSION"
)

// Config holds the harness settings. Relative paths in Source and
// ExpectedDir are resolved against WorkDir.
type Config struct {
	WorkDir     string
	Source      string
	Target      string
	ExpectedDir string
	Python      string
	LogLevel    string
	Version     string
}

// Default returns the settings used when no environment overrides are set.
// Python is left empty and resolved by Load.
func Default() Config {
	return Config{
		WorkDir:     ".",
		Source:      "calculator.py",
		Target:      "./calculator.py",
		ExpectedDir: "tests",
		LogLevel:    "info",
		Version:     "0.0.0-dev",
	}
}

// Load applies environment overrides to Default. getenv is usually os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	override := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.WorkDir, EnvWorkDir)
	override(&cfg.Source, EnvSource)
	override(&cfg.Target, EnvTarget)
	override(&cfg.ExpectedDir, EnvExpectedDir)
	override(&cfg.Python, EnvPython)
	override(&cfg.LogLevel, EnvLogLevel)
	override(&cfg.Version, EnvVersion)

	if cfg.Python == "" {
		python, err := FindPython(exec.LookPath)
		if err != nil {
			return cfg, err
		}
		cfg.Python = python
	}
	return cfg, nil
}

// FindPython looks for python3, then python. Windows installs may not ship python3.
func FindPython(lookPath func(string) (string, error)) (string, error) {
	for _, name := range []string{"python3", "python"} {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrNoInterpreter
}

// SourcePath returns the probed file's path.
func (c Config) SourcePath() string {
	return c.resolve(c.Source)
}

// ExpectedPath returns the path of an expected-results file by base name.
func (c Config) ExpectedPath(file string) string {
	return filepath.Join(c.resolve(c.ExpectedDir), file)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}
