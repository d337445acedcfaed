package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/eda"
	"github.com/wdm0006/edachain/pkg/transform/encode"
)

const HeatMapTitle = "Feature Correlation Matrix"

// Correlation computes the pairwise Pearson matrix of all columns, after
// encoding low-cardinality text columns, and renders it as a heatmap. The
// encoding happens on a copy; the input table is returned untouched.
type Correlation struct {
	MaxCardinality int
	Plotter        chart.Plotter
	Logger         *slog.Logger
}

func (c *Correlation) Name() string { return "correlation_analysis" }

func (c *Correlation) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := loggerOr(c.Logger)
	logger.InfoContext(ctx, "performing correlation analysis")

	work := f.Clone()
	enc := &encode.Categorical{MaxCardinality: c.MaxCardinality, Logger: logger}
	if _, err := enc.Process(ctx, work); err != nil {
		return nil, err
	}
	cols := make([]*eda.FloatColumn, 0, work.Cols())
	for _, col := range work.Columns() {
		cols = append(cols, eda.ToNumeric(col))
	}
	m := Matrix(cols)
	if allNaN(m) {
		logger.WarnContext(ctx, "correlation matrix contains only NaN values, check data types")
		return f, nil
	}
	if err := c.Plotter.HeatMap(HeatMapTitle, work.ColumnNames(), m); err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	return f, nil
}

// Matrix returns the pairwise-complete Pearson correlation of cols.
func Matrix(cols []*eda.FloatColumn) [][]float64 {
	m := make([][]float64, len(cols))
	for i := range m {
		m[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := Pearson(cols[i], cols[j])
			m[i][j], m[j][i] = r, r
		}
	}
	return m
}

// Pearson correlates x and y over the rows where both are present. Fewer than
// two such rows, or a constant side, give NaN.
func Pearson(x, y *eda.FloatColumn) float64 {
	var xs, ys []float64
	for i := 0; i < x.Len(); i++ {
		a, aok := x.Get(i)
		b, bok := y.Get(i)
		if aok && bok {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

func allNaN(m [][]float64) bool {
	for _, row := range m {
		for _, v := range row {
			if !math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}
