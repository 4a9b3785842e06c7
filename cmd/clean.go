package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuibench/internal/bench"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove venvs and build artifacts from the suite",
	Long: `Removes per-workload virtual environments, Nuitka build output and
cache directories. With --all the stored result files are removed too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.Default()

		suiteDir := viper.GetString("benchmarks_dir")
		if suiteDir == "" {
			suiteDir = "benchmarks"
		}

		removed, err := bench.CleanSuite(suiteDir, logger)
		if err != nil {
			return err
		}
		logger.Info("suite cleaned", "removed", removed)

		if cleanAll {
			resultsDir := viper.GetString("results_dir")
			if resultsDir == "" {
				resultsDir = "results"
			}
			if err := os.RemoveAll(resultsDir); err != nil {
				return err
			}
			logger.Info("results removed", "dir", resultsDir)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "also remove stored result files")
	rootCmd.AddCommand(cleanCmd)
}
