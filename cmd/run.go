package cmd

import (
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"nuibench/internal/cli"
	"nuibench/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run <python-version> [channel]",
	Short: "Benchmark the whole suite for one interpreter version",
	Long: `Runs every workload under the suite directory for the given CPython
version: provisions a venv, compiles with Nuitka, then times both the
compiled and the interpreted variant.

The optional channel picks the Nuitka build under test: "release"
(default) or "factory" (pre-release branch).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := config.ChannelRelease
		if len(args) == 2 {
			var err error
			if channel, err = config.ParseChannel(args[1]); err != nil {
				return err
			}
		}

		cfg, err := config.New(args[0], channel)
		if err != nil {
			return err
		}

		// Interrupt terminates the run after the in-flight workload's
		// artifacts are cleaned up.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := log.Default()
		res, err := cli.Start(ctx, cfg, logger)
		return cli.ExitError(res, err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
