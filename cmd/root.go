package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuibench/internal/banner"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nuibench",
	Short: "nuibench - Nuitka vs CPython benchmark harness",
	Long: `
nuibench compiles a suite of Python workloads with Nuitka and compares
them against plain CPython execution.

Each workload gets its own virtual environment and Nuitka build, then
both variants are run repeatedly and the timing samples are persisted to
flat JSON result files for reporting.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nuibench.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	rootCmd.PersistentFlags().Int("iterations", 100, "repetitions per phase per mode")
	rootCmd.PersistentFlags().String("benchmarks-dir", "benchmarks", "workload suite directory")
	rootCmd.PersistentFlags().String("results-dir", "results", "result file directory")
	viper.BindPFlag("iterations", rootCmd.PersistentFlags().Lookup("iterations"))
	viper.BindPFlag("benchmarks_dir", rootCmd.PersistentFlags().Lookup("benchmarks-dir"))
	viper.BindPFlag("results_dir", rootCmd.PersistentFlags().Lookup("results-dir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".nuibench")
		}
	}
	viper.SetEnvPrefix("NUIBENCH")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}
