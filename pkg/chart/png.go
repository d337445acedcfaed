package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PNG writes every figure to <Dir>/<slug>.png.
type PNG struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	files  []string
}

func NewPNG(dir string) (*PNG, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}
	return &PNG{Dir: dir, Width: 10 * vg.Inch, Height: 6 * vg.Inch}, nil
}

// Files lists the images written so far, in write order.
func (p *PNG) Files() []string { return append([]string(nil), p.files...) }

func (p *PNG) save(pl *plot.Plot, title string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %q: %v", title, r)
		}
	}()
	path := filepath.Join(p.Dir, Slug(title)+".png")
	if err = pl.Save(p.Width, p.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	p.files = append(p.files, path)
	return nil
}

func (p *PNG) Histogram(title string, values []float64, bins int) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram %q: no values", title)
	}
	pl := plot.New()
	pl.Title.Text = title
	pl.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return err
	}
	pl.Add(h)
	return p.save(pl, title)
}

func (p *PNG) BoxPlot(title string, groups []string, values [][]float64) error {
	if len(groups) != len(values) {
		return fmt.Errorf("boxplot %q: %d groups for %d value sets", title, len(groups), len(values))
	}
	pl := plot.New()
	pl.Title.Text = title
	for i, vals := range values {
		if len(vals) == 0 {
			return fmt.Errorf("boxplot %q: group %s is empty", title, groups[i])
		}
		b, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(vals))
		if err != nil {
			return err
		}
		pl.Add(b)
	}
	pl.NominalX(groups...)
	return p.save(pl, title)
}

func (p *PNG) HeatMap(title string, labels []string, matrix [][]float64) error {
	n := len(labels)
	if len(matrix) != n {
		return fmt.Errorf("heatmap %q: %d labels for %d rows", title, n, len(matrix))
	}
	pl := plot.New()
	pl.Title.Text = title

	g := grid(matrix)
	hm := plotter.NewHeatMap(g, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	pl.Add(hm)

	var cells plotter.XYLabels
	for r := range matrix {
		for c, v := range matrix[r] {
			if math.IsNaN(v) {
				continue
			}
			cells.XYs = append(cells.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			cells.Labels = append(cells.Labels, fmt.Sprintf("%.2f", v))
		}
	}
	if len(cells.XYs) > 0 {
		lbl, err := plotter.NewLabels(cells)
		if err != nil {
			return err
		}
		pl.Add(lbl)
	}

	pl.NominalX(labels...)
	// row 0 is drawn at the top
	rev := make([]string, n)
	for i, l := range labels {
		rev[n-1-i] = l
	}
	pl.NominalY(rev...)
	return p.save(pl, title)
}

// grid adapts a square matrix to plotter.GridXYZ.
type grid [][]float64

func (g grid) Dims() (c, r int) { return len(g), len(g) }

// Z clamps rounding noise so a perfect correlation is not drawn as overflow.
func (g grid) Z(c, r int) float64 {
	return math.Max(-1, math.Min(1, g[r][c]))
}

func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(len(g) - 1 - r) }
