// Package charts renders the pipeline's diagnostic figures as standalone
// HTML files using go-echarts: time series, run profiles, envelopes,
// weather categories, and cluster scatter plots.
package charts

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hauslab/powerprofiles/internal/cluster"
	"github.com/hauslab/powerprofiles/internal/profile"
)

const (
	chartWidth  = "1100px"
	chartHeight = "700px"
)

// render writes any chart (or page) to an HTML file.
func render(path string, c components.Charter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: creating %s: %w", path, err)
	}
	defer f.Close()

	page := components.NewPage()
	page.AddCharts(c)
	if err := page.Render(f); err != nil {
		return fmt.Errorf("charts: rendering %s: %w", path, err)
	}
	return nil
}

// hoursAxis labels n samples at the given resolution in fractional hours.
func hoursAxis(n, minuteRes int) []string {
	axis := make([]string, n)
	for i := 0; i < n; i++ {
		axis[i] = strconv.FormatFloat(float64(i*minuteRes)/60, 'f', 2, 64)
	}
	return axis
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// TimeSeries renders a full raw power series against relative minutes.
func TimeSeries(path, title string, minutes []int, power []float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "minutes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kWh"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	axis := make([]string, len(minutes))
	for i, m := range minutes {
		axis[i] = strconv.Itoa(m)
	}
	line.SetXAxis(axis).AddSeries("power", lineData(power),
		charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
	return render(path, line)
}

// RunProfiles renders every run of one appliance as its own line.
func RunProfiles(path, title string, runs []profile.Run, minuteRes int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "minutes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kWh"}),
	)

	longest := 0
	for _, r := range runs {
		if len(r.Values) > longest {
			longest = len(r.Values)
		}
	}
	axis := make([]string, longest)
	for i := range axis {
		axis[i] = strconv.Itoa(i * minuteRes)
	}

	line.SetXAxis(axis)
	for i, r := range runs {
		line.AddSeries(fmt.Sprintf("run %d", i+1), lineData(r.Values),
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
	}
	return render(path, line)
}

// SeasonProfiles renders one line per PV day, one series per season.
func SeasonProfiles(path, title string, seasons profile.SeasonRuns, minuteRes int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "hours"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kWh"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var axis []string
	for _, season := range profile.Seasons {
		runs := seasons[season]
		if len(runs) == 0 {
			continue
		}
		if axis == nil {
			axis = hoursAxis(len(runs[0].Values), minuteRes)
			line.SetXAxis(axis)
		}
		for i, r := range runs {
			name := season.String()
			if i > 0 {
				name = fmt.Sprintf("%s %d", season, i+1)
			}
			line.AddSeries(name, lineData(r.Values),
				charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
		}
	}
	return render(path, line)
}

// OptimalProfile renders a season's runs against its envelope, the
// normalization reference.
func OptimalProfile(path, title string, runs []profile.Run, envelope []float64, minuteRes int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "hours"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kWh"}),
	)

	line.SetXAxis(hoursAxis(len(envelope), minuteRes))
	for i, r := range runs {
		line.AddSeries(fmt.Sprintf("day %d", i+1), lineData(r.Values),
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
	}
	line.AddSeries("optimal", lineData(envelope),
		charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
	return render(path, line)
}

// WeatherAccumulated renders accumulated profiles per weather type.
func WeatherAccumulated(path, title string, byWeather map[profile.WeatherType][]profile.Run, minuteRes int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "hours"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "accumulated factors"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var axis []string
	for _, w := range profile.WeatherTypes {
		runs := byWeather[w]
		for i, r := range runs {
			cumulative := r.Cumulative()
			if axis == nil {
				axis = hoursAxis(len(cumulative.Values), minuteRes)
				line.SetXAxis(axis)
			}
			name := w.String()
			if i > 0 {
				name = fmt.Sprintf("%s %d", w, i+1)
			}
			line.AddSeries(name, lineData(cumulative.Values),
				charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}))
		}
	}
	return render(path, line)
}

// ClusterScatter plots runs in (duration, peak) space: one scatter series
// per cluster (training plus classified runs), the cluster parameter
// rectangles as dashed outlines, and the unclassified runs as their own
// series.
func ClusterScatter(path, title string, clusters []*cluster.Cluster, unclassified []profile.Run) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "minutes"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "kWh"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	for i, c := range clusters {
		data := make([]opts.ScatterData, 0, len(c.TrainingRuns)+len(c.ClassifiedRuns))
		for _, r := range append(append([]profile.Run{}, c.TrainingRuns...), c.ClassifiedRuns...) {
			data = append(data, opts.ScatterData{Value: []interface{}{r.Duration(), r.Peak()}})
		}
		scatter.AddSeries(fmt.Sprintf("cluster %d", i+1), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}

	if len(unclassified) > 0 {
		data := make([]opts.ScatterData, 0, len(unclassified))
		for _, r := range unclassified {
			data = append(data, opts.ScatterData{Value: []interface{}{r.Duration(), r.Peak()}})
		}
		scatter.AddSeries("not classified", data,
			charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "triangle", SymbolSize: 10}))
	}

	rectangles := charts.NewLine()
	for i, c := range clusters {
		corners := [][2]float64{
			{float64(c.MinDuration), c.MinConsumption},
			{float64(c.MaxDuration), c.MinConsumption},
			{float64(c.MaxDuration), c.MaxConsumption},
			{float64(c.MinDuration), c.MaxConsumption},
			{float64(c.MinDuration), c.MinConsumption},
		}
		data := make([]opts.LineData, 0, len(corners))
		for _, p := range corners {
			data = append(data, opts.LineData{Value: []interface{}{p[0], p[1]}})
		}
		rectangles.AddSeries(fmt.Sprintf("bounds %d", i+1), data,
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Color: "#666"}),
		)
	}
	scatter.Overlap(rectangles)

	return render(path, scatter)
}
