// Package charts renders a comparison report as a go-echarts page.
package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/report"
)

const theme = "macarons"

// Render writes the full dashboard page for r.
func Render(w io.Writer, r report.Report) error {
	return Page(r).Render(w)
}

// Page assembles every chart of the report in display order.
func Page(r report.Report) *components.Page {
	page := components.NewPage()
	page.PageTitle = "MoveGuider"

	for _, m := range []planner.Metric{planner.MetricTemperature, planner.MetricHumidity} {
		if frame, ok := r.Frames[m]; ok {
			page.AddCharts(metricChart(r, m, frame))
		}
	}
	page.AddCharts(routineChart(r))
	for _, c := range r.Cities {
		page.AddCharts(workoutChart(c))
	}
	page.AddCharts(hydrationChart(r), energyChart(r), wheelChart(r))
	return page
}

func hourLabels() []string {
	labels := make([]string, 24)
	for h := range labels {
		labels[h] = fmt.Sprintf("%02d:00", h)
	}
	return labels
}

// metricChart plots the per-hour average of each city on the home-zone clock.
func metricChart(r report.Report, metric planner.Metric, frame []planner.ComparisonPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    string(metric),
			Subtitle: fmt.Sprintf("Average by hour in %s%s", r.HomeZone, sunSubtitle(r.Sun)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Home time"}),
	)
	line.SetXAxis(hourLabels())

	for _, c := range r.Cities {
		var (
			sum [24]float64
			n   [24]int
		)
		for _, p := range frame {
			if p.City != c.Short {
				continue
			}
			h := int(math.Floor(p.Hour)) % 24
			sum[h] += p.Average
			n[h]++
		}

		items := make([]opts.LineData, 24)
		for h := range items {
			if n[h] == 0 {
				items[h] = opts.LineData{Value: "-"}
				continue
			}
			items[h] = opts.LineData{Value: round(sum[h]/float64(n[h]), 1)}
		}
		line.AddSeries(c.Short, items)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func sunSubtitle(markers []planner.SunMarker) string {
	var s string
	for _, m := range markers {
		s += fmt.Sprintf(" | %s sunrise %s, sunset %s", m.City, clock(m.Sunrise), clock(m.Sunset))
	}
	return s
}

func clock(hours float64) string {
	mins := int(math.Round(hours * 60))
	return fmt.Sprintf("%02d:%02d", (mins/60)%24, mins%60)
}

// routineChart draws the projected routine as a gantt: a transparent offset
// bar stacked under a bar for the task length, on the local clock.
func routineChart(r report.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily Routine",
			Subtitle: fmt.Sprintf("Reference date %s, local time per city", r.ReferenceDate),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour", Min: 0, Max: 24}),
	)

	labels := make([]string, 0, len(r.Routine))
	offsets := make([]opts.BarData, 0, len(r.Routine))
	lengths := make([]opts.BarData, 0, len(r.Routine))
	for _, t := range r.Routine {
		start := planner.TimeOfDayOf(t.Start).Hours()
		span := t.Duration().Hours()
		if span <= 0 {
			span += 24
		}
		span = math.Min(span, 24-start)

		labels = append(labels, fmt.Sprintf("%s (%s)", t.Label, t.Resource))
		offsets = append(offsets, opts.BarData{Value: round(start, 2)})
		lengths = append(lengths, opts.BarData{
			Value: round(span, 2),
			Name:  fmt.Sprintf("%s-%s", t.Start.Format("15:04"), t.End.Format("15:04")),
		})
	}

	bar.SetXAxis(labels).
		AddSeries("offset", offsets, charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent"})).
		AddSeries("task", lengths).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "routine"}))
	bar.XYReversal()
	return bar
}

// workoutChart ranks a city's best windows by score.
func workoutChart(c report.CityReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Best Workout Times: " + c.Short,
			Subtitle: "Lower score is better",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(c.Top))
	scores := make([]opts.BarData, 0, len(c.Top))
	for _, w := range c.Top {
		labels = append(labels, fmt.Sprintf("%s %s", w.Day, w.Start.Format("15:04")))
		scores = append(scores, opts.BarData{Value: round(w.Score, 1), Name: w.Detail})
	}
	bar.SetXAxis(labels).AddSeries("score", scores)
	return bar
}

func hydrationChart(r report.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cumulative Hydration",
			Subtitle: fmt.Sprintf("%.0f kg, first 24 forecast hours", r.Settings.WeightKg),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ml"}),
	)

	labels := make([]string, 24)
	for i := range labels {
		labels[i] = fmt.Sprintf("+%dh", i)
	}
	line.SetXAxis(labels)

	for _, c := range r.Cities {
		items := make([]opts.LineData, 0, len(c.Hydration))
		for _, p := range c.Hydration {
			items = append(items, opts.LineData{Value: round(p.CumulativeML, 0)})
		}
		line.AddSeries(c.Short, items)
	}
	return line
}

func energyChart(r report.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Energy Curve",
			Subtitle: fmt.Sprintf("%s, awake %s-%s", r.Settings.Chronotype, r.Settings.WakeTime, r.Settings.SleepTime),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Performance %", Min: 0, Max: 100}),
	)

	labels := make([]string, 0, len(r.Energy))
	items := make([]opts.LineData, 0, len(r.Energy))
	for _, p := range r.Energy {
		labels = append(labels, clock(p.Hour))
		items = append(items, opts.LineData{Value: p.Performance})
	}
	line.SetXAxis(labels).AddSeries("performance", items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// wheelChart compares the current conditions with the ideal band on a radar.
func wheelChart(r report.Report) *charts.Radar {
	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme}),
		charts.WithTitleOpts(opts.Title{Title: "Comfort Wheel", Subtitle: "Now vs ideal range"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "bottom"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: []*opts.Indicator{
				{Name: string(planner.MetricTemperature), Max: 45},
				{Name: string(planner.MetricHumidity), Max: 100},
				{Name: string(planner.MetricUV), Max: 12},
			},
		}),
	)

	low := make([]float64, len(planner.WheelAxes))
	high := make([]float64, len(planner.WheelAxes))
	for i, axis := range planner.WheelAxes {
		low[i], high[i] = axis.IdealMin, axis.IdealMax
	}
	radar.AddSeries("Ideal max", []opts.RadarData{{Value: high}})
	radar.AddSeries("Ideal min", []opts.RadarData{{Value: low}})
	for _, w := range r.Wheel {
		radar.AddSeries(w.City, []opts.RadarData{{Value: w.Values}})
	}
	return radar
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
