package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuibench/internal/scaffold"
)

var (
	scaffoldDescription  string
	scaffoldRequirements bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <bm_name>",
	Short: "Generate a new workload directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suiteDir := viper.GetString("benchmarks_dir")
		if suiteDir == "" {
			suiteDir = "benchmarks"
		}

		w, err := scaffold.Create(suiteDir, args[0], scaffold.Options{
			Description:  scaffoldDescription,
			Requirements: scaffoldRequirements,
		})
		if err != nil {
			return err
		}

		log.Default().Info("workload created", "dir", w.Dir)
		return nil
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldDescription, "description", "", "docstring for the generated entry point")
	scaffoldCmd.Flags().BoolVar(&scaffoldRequirements, "requirements", false, "also create an empty requirements.txt")
	rootCmd.AddCommand(scaffoldCmd)
}
