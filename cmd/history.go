package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"nuibench/internal/report"
	"nuibench/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewStore("")
		if err != nil {
			return err
		}

		items := store.List()
		if len(items) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(report.ColorBorder)).
			Headers("When", "Platform", "CPython", "Channel", "Done", "Skipped", "Failed", "Took")

		for _, item := range items {
			tbl.Row(
				item.Timestamp.Format("2006-01-02 15:04"),
				item.Platform,
				item.PythonVersion,
				item.Channel,
				fmt.Sprintf("%d", item.Workloads),
				fmt.Sprintf("%d", item.Skipped),
				fmt.Sprintf("%d", item.Failures),
				(time.Duration(item.DurationSec * float64(time.Second))).Round(time.Second).String(),
			)
		}

		fmt.Println(tbl.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
