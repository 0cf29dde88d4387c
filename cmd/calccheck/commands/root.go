// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/calccheck/internal/config"
)

// NewRootCmd constructs the calccheck root Cobra command.
func NewRootCmd() *cobra.Command {
	opts := &harnessOptions{getenv: os.Getenv}

	cmd := &cobra.Command{
		Use:   "calccheck",
		Short: "Detect what calculator.py implements and check its output",
		Long: `calccheck inspects calculator.py, works out which capabilities it has,
and runs the test scenario for that combination against the recorded
expected results. Only one scenario is expected to pass at any point in the
assignment.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.forced = cmd.Flags().Changed("force")
			return runHarness(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.force, "force", 0, "run this case number instead of the detected one")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of calccheck",
		Run: func(cmd *cobra.Command, args []string) {
			version := config.Default().Version
			if v := opts.getenv(config.EnvVersion); v != "" {
				version = v
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "calccheck version %s\n", version)
		},
	})

	return cmd
}
