package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSeries is one named curve over a grid, e.g. a prior, a likelihood
// shape or a posterior marginal.
type PlotSeries struct {
	Name   string
	Values []float64
}

// SaveDistributionPlot writes a PNG with one line per series over the grid's
// candidate values.
func SaveDistributionPlot(path, title, xLabel string, g *Grid, series []PlotSeries) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Density"

	for _, s := range series {
		if len(s.Values) != g.Len() {
			return &ShapeMismatchError{Want: []int{g.Len()}, Got: []int{len(s.Values)}}
		}
		pts := make(plotter.XYs, g.Len())
		for i := range pts {
			pts[i] = plotter.XY{X: g.At(i), Y: s.Values[i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save distribution plot: %w", err)
	}
	return nil
}

// tableGrid adapts a two-parameter Table to the plotter heatmap interface.
// Columns follow the second parameter's grid, rows the first's.
type tableGrid struct {
	t *Table
}

func (tg tableGrid) Dims() (c, r int)   { return tg.t.Grid(1).Len(), tg.t.Grid(0).Len() }
func (tg tableGrid) Z(c, r int) float64 { return tg.t.At(r, c) }
func (tg tableGrid) X(c int) float64    { return tg.t.Grid(1).At(c) }
func (tg tableGrid) Y(r int) float64    { return tg.t.Grid(0).At(r) }

// SaveJointHeatmap writes a PNG heatmap of a two-parameter posterior.
func SaveJointHeatmap(path, title, xLabel, yLabel string, t *Table) error {
	if t.Dims() != 2 {
		return fmt.Errorf("heatmap: need a 2-parameter table, have %d", t.Dims())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	pal := palette.Heat(64, 1)
	hm := plotter.NewHeatMap(tableGrid{t: t}, pal)
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// MakeOutputDir creates the directory plots and reports are written into.
func MakeOutputDir(baseDir, demoName string) (string, error) {
	dir := filepath.Join(baseDir, demoName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	return dir, nil
}
