package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nuibench/internal/config"
	"nuibench/internal/samples"
	"nuibench/internal/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
)

// Row is one reconciled (python version, channel) line for a workload.
type Row struct {
	PythonVersion config.PyVersion
	Channel       string
	Interpreted   float64
	Compiled      float64
	Diff          float64
	Err           string // reconciliation failure, shown instead of numbers
}

// WorkloadReport groups all result-file rows for one workload.
type WorkloadReport struct {
	Name string
	Rows []Row
}

// Collect loads every result file for the platform from dir and
// reconciles it into per-workload rows. A file that is present but
// unreadable or an empty placeholder fails that item only.
func Collect(dir, platform string, logger *log.Logger) ([]WorkloadReport, error) {
	if logger == nil {
		logger = log.Default()
	}

	matches, err := filepath.Glob(filepath.Join(dir, platform+"-*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no result files for %s in %s", samples.ErrNotFound, platform, dir)
	}
	sort.Strings(matches)

	byWorkload := make(map[string][]Row)
	for _, path := range matches {
		version, channel, ok := parseFileName(platform, path)
		if !ok {
			logger.Warn("skipping unrecognized result file", "path", path)
			continue
		}

		rf, err := samples.Load(path)
		if err != nil {
			if errors.Is(err, samples.ErrNotFound) {
				logger.Warn("skipping in-progress result file", "path", path)
			} else {
				logger.Error("skipping unreadable result file", "path", path, "err", err)
			}
			continue
		}

		for name, rec := range rf.Records {
			row := Row{PythonVersion: version, Channel: channel}
			compiled, interpreted, diff, err := stats.CompareRecord(rec)
			if err != nil {
				row.Err = err.Error()
			} else {
				row.Compiled = compiled
				row.Interpreted = interpreted
				row.Diff = diff
			}
			byWorkload[name] = append(byWorkload[name], row)
		}
	}

	reports := make([]WorkloadReport, 0, len(byWorkload))
	for name, rows := range byWorkload {
		// Newest interpreter first, release before factory within a version.
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].PythonVersion != rows[j].PythonVersion {
				return rows[j].PythonVersion.AtMost(rows[i].PythonVersion)
			}
			return rows[i].Channel < rows[j].Channel
		})
		reports = append(reports, WorkloadReport{Name: name, Rows: rows})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	return reports, nil
}

// parseFileName extracts version and channel from
// "<platform>-<version>-<channel>.json".
func parseFileName(platform, path string) (config.PyVersion, string, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), ".json")
	rest, ok := strings.CutPrefix(stem, platform+"-")
	if !ok {
		return config.PyVersion{}, "", false
	}
	versionStr, channel, ok := strings.Cut(rest, "-")
	if !ok {
		return config.PyVersion{}, "", false
	}
	version, err := config.ParsePyVersion(versionStr)
	if err != nil {
		return config.PyVersion{}, "", false
	}
	return version, channel, true
}

// FormatDiff styles the relative comparison the way the tables show it:
// green +x.xx% when compiled wins, red -x.xx% when it loses.
func FormatDiff(diff float64) string {
	switch {
	case diff > 0:
		return Faster.Render(fmt.Sprintf("+%.2f%%", diff))
	case diff < 0:
		return Slower.Render(fmt.Sprintf("%.2f%%", diff))
	default:
		return Neutral.Render("0.00%")
	}
}

// Render builds the full terminal report: a platform header panel and
// one boxed table per workload.
func Render(platform, emoji string, reports []WorkloadReport) string {
	var sections []string

	header := Panel.Render(Header.Render(fmt.Sprintf("%s %s %s", emoji, platform, emoji)))
	sections = append(sections, header)

	for _, wr := range reports {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return Header.Padding(0, 1)
				}
				return Cell
			}).
			Headers("Version", "Channel", "CPython", "Nuitka", "Diff")

		for _, row := range wr.Rows {
			if row.Err != "" {
				tbl.Row(row.PythonVersion.String(), row.Channel,
					Subtle.Render("n/a"), Subtle.Render("n/a"), Slower.Render(row.Err))
				continue
			}
			tbl.Row(
				row.PythonVersion.String(),
				row.Channel,
				fmt.Sprintf("%.2fs", row.Interpreted),
				fmt.Sprintf("%.2fs", row.Compiled),
				FormatDiff(row.Diff),
			)
		}

		card := lipgloss.JoinVertical(lipgloss.Left, Title.Render(wr.Name), tbl.Render())
		sections = append(sections, Box.Render(card))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// WriteText saves the rendered report next to the exported chart.
func WriteText(path, rendered string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(rendered), 0644)
}
