package main

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/framewright/stabilize/internal/fsutil"
	"github.com/framewright/stabilize/internal/stabilize"
	"github.com/framewright/stabilize/internal/units"
)

// writeChart renders the integrated raw and smoothed camera paths as
// line charts, one per channel, into a single HTML page.
func writeChart(path string, result *stabilize.Result) error {
	page := components.NewPage()
	page.PageTitle = "Camera path"

	page.AddCharts(
		pathChart("Horizontal path (px)", result.Raw.DX, result.Smoothed.DX, 1),
		pathChart("Vertical path (px)", result.Raw.DY, result.Smoothed.DY, 1),
		pathChart("Rotation path (deg)", result.Raw.Rotation, result.Smoothed.Rotation, units.RadToDeg(1)),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// pathChart plots the integrated raw deltas against the smoothed ones.
// unit scales each sample (used to display rotation in degrees).
func pathChart(title string, raw, smoothed []float32, unit float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(raw)+1)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i)
	}

	line.SetXAxis(labels).
		AddSeries("raw", lineData(raw, unit)).
		AddSeries("smoothed", lineData(smoothed, unit))
	return line
}

// lineData integrates per-pair deltas into an absolute path for display.
func lineData(deltas []float32, unit float64) []opts.LineData {
	data := make([]opts.LineData, len(deltas)+1)
	data[0] = opts.LineData{Value: 0.0}
	sum := 0.0
	for i, d := range deltas {
		sum += float64(d) * unit
		data[i+1] = opts.LineData{Value: sum}
	}
	return data
}
