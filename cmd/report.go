package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuibench/internal/config"
	"nuibench/internal/report"
)

var (
	reportChart bool
	reportOut   string
)

var reportCmd = &cobra.Command{
	Use:   "report [platform]",
	Short: "Render comparison tables from stored results",
	Long: `Reads every result file for the platform (default: the current one)
and renders a comparison table per workload. With --chart an HTML bar
chart of the speedups is exported next to the result files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform := config.DetectPlatform()
		if len(args) == 1 {
			platform = args[0]
		}

		resultsDir := viper.GetString("results_dir")
		if resultsDir == "" {
			resultsDir = "results"
		}

		logger := log.Default()
		reports, err := report.Collect(resultsDir, platform, logger)
		if err != nil {
			return err
		}

		rendered := report.Render(platform, config.EmojiFor(platform), reports)
		fmt.Print(rendered)

		if reportOut != "" {
			if err := report.WriteText(reportOut, rendered); err != nil {
				return err
			}
			logger.Info("report written", "path", reportOut)
		}

		if reportChart {
			chartPath := filepath.Join(resultsDir, platform+"_benchmarks.html")
			if err := report.WriteChart(chartPath, platform, reports); err != nil {
				return err
			}
			logger.Info("chart exported", "path", chartPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportChart, "chart", false, "export an HTML bar chart")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "also write the rendered report to a file")
	rootCmd.AddCommand(reportCmd)
}
