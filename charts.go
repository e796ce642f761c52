package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTMLReport writes a self-contained HTML page charting the given
// series over the grid using go-echarts. This is the browsable counterpart
// of the PNG plots: one line per series, hoverable values.
func RenderHTMLReport(path, title, xLabel string, g *Grid, series []PlotSeries) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: "density"}),
	)

	xs := make([]string, g.Len())
	for i := range xs {
		xs[i] = strconv.FormatFloat(g.At(i), 'g', 6, 64)
	}
	line.SetXAxis(xs)

	for _, s := range series {
		if len(s.Values) != g.Len() {
			return &ShapeMismatchError{Want: []int{g.Len()}, Got: []int{len(s.Values)}}
		}
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
