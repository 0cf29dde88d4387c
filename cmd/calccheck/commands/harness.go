package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bartekus/calccheck/cmd/calccheck/internal/clierr"
	"github.com/bartekus/calccheck/internal/capability"
	"github.com/bartekus/calccheck/internal/config"
	"github.com/bartekus/calccheck/internal/logging"
	"github.com/bartekus/calccheck/internal/probe"
	"github.com/bartekus/calccheck/internal/runner"
	"github.com/bartekus/calccheck/internal/scenario"
)

type harnessOptions struct {
	force  int
	forced bool
	getenv func(string) string
}

func runHarness(ctx context.Context, out io.Writer, opts *harnessOptions) error {
	cfg, cfgErr := config.Load(opts.getenv)
	log := logging.New(out, logging.ParseLevel(cfg.LogLevel))
	if cfgErr != nil {
		log.Error("Cannot find a python3 or python executable -- giving up")
		return clierr.Fail("configuration", cfgErr)
	}

	var c capability.Case
	if opts.forced {
		c = capability.Case(opts.force)
	} else {
		detected, err := detect(ctx, cfg, log)
		if err != nil {
			return clierr.Fail("capability detection", err)
		}
		c = detected
	}
	log.Info(fmt.Sprintf("Testing case: %d", int(c)))

	table, err := scenario.Default()
	if err != nil {
		return clierr.Fail("loading scenarios", err)
	}

	r := runner.New(runner.Options{
		Interpreter: cfg.Python,
		Target:      cfg.Target,
		Dir:         cfg.WorkDir,
		Logger:      log,
	})
	d := scenario.NewDispatcher(table, r, cfg.ExpectedPath, log)
	if err := d.Dispatch(ctx, c); err != nil {
		return clierr.Fail("test failure", err)
	}

	log.Info("SUCCESS!")
	return nil
}

func detect(ctx context.Context, cfg config.Config, log *slog.Logger) (capability.Case, error) {
	log.Info(fmt.Sprintf("Checking for what capabilities exist in %s", cfg.Source))
	log.Info(`NOTE: A "False" output here does not mean a test failure!`)
	log.Info(fmt.Sprintf("NOTE: It just means that that capability is not in %s, which -- at that point in the DAG -- may well be correct!", cfg.Source))

	probes := capability.Probes{
		Functions: probe.NewFunctionProber(cfg.Python, log),
		Strings:   probe.NewSourceCache(log),
	}
	c, flags, err := capability.Detect(ctx, probes, cfg.SourcePath())
	if err != nil {
		return 0, err
	}
	for _, chk := range capability.Checks {
		log.Debug("capability", "flag", chk.Flag.String(), "present", flags[chk.Flag])
	}
	return c, nil
}
