package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteChart exports the comparison as a grouped bar chart: one bar
// group per workload, one series per (python version, channel), value =
// speedup percent (negative when the compiled build lost).
func WriteChart(path, platform string, reports []WorkloadReport) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			PageTitle: fmt.Sprintf("%s benchmarks", platform),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Nuitka vs CPython on %s", platform),
			Subtitle: "positive = compiled faster (% of interpreted mean)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var names []string
	for _, wr := range reports {
		names = append(names, wr.Name)
	}
	bar.SetXAxis(names)

	// One series per version/channel combination across all workloads.
	type seriesKey struct {
		version string
		channel string
	}
	values := make(map[seriesKey]map[string]float64)
	for _, wr := range reports {
		for _, row := range wr.Rows {
			if row.Err != "" {
				continue
			}
			key := seriesKey{row.PythonVersion.String(), row.Channel}
			if values[key] == nil {
				values[key] = make(map[string]float64)
			}
			values[key][wr.Name] = row.Diff
		}
	}

	keys := make([]seriesKey, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].version != keys[j].version {
			return keys[i].version > keys[j].version
		}
		return keys[i].channel < keys[j].channel
	})

	for _, key := range keys {
		data := make([]opts.BarData, 0, len(names))
		for _, name := range names {
			if v, ok := values[key][name]; ok {
				data = append(data, opts.BarData{Value: v})
			} else {
				data = append(data, opts.BarData{Value: nil})
			}
		}
		bar.AddSeries(fmt.Sprintf("%s (%s)", key.version, key.channel), data)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
