package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/eda"
)

// Bivariate draws a boxplot of every numeric column grouped by the binary
// Target column. A failure on one column is logged and does not stop the
// others.
type Bivariate struct {
	Target  string
	Plotter chart.Plotter
	Logger  *slog.Logger
}

func (b *Bivariate) Name() string { return "bivariate_analysis" }

func (b *Bivariate) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := loggerOr(b.Logger)
	logger.InfoContext(ctx, "performing bivariate analysis", "target", b.Target, "plotter", fmt.Sprintf("%T", b.Plotter))

	tcol, ok := f.ColumnByName(b.Target)
	if !ok {
		logger.ErrorContext(ctx, "target column not found", "target", b.Target)
		return nil, fmt.Errorf("%w: target %s", eda.ErrMissingColumn, b.Target)
	}
	logger.InfoContext(ctx, "target column", "target", b.Target, "kind", tcol.Kind().String(), "sample", sample(tcol, 5))

	var cols []string
	for _, col := range f.Columns() {
		if col.Name() != b.Target && eda.IsNumeric(col.Kind()) {
			cols = append(cols, col.Name())
		}
	}
	target := eda.ToNumeric(tcol)
	for _, name := range cols {
		logger.InfoContext(ctx, "plotting", "column", name, "target", b.Target)
		if err := b.plot(f, name, target); err != nil {
			logger.ErrorContext(ctx, "error plotting column", "column", name, "error", err)
		}
	}
	return f, nil
}

func (b *Bivariate) plot(f *eda.Frame, name string, target *eda.FloatColumn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plotter panic: %v", r)
		}
	}()
	if err := f.CoerceNumeric(name); err != nil {
		return err
	}
	col, _ := f.ColumnByName(name)
	vals := eda.ToNumeric(col)

	groups := [][]float64{{}, {}}
	for i := 0; i < vals.Len(); i++ {
		v, ok := vals.Get(i)
		t, tok := target.Get(i)
		if !ok || !tok {
			continue
		}
		switch t {
		case 0:
			groups[0] = append(groups[0], v)
		case 1:
			groups[1] = append(groups[1], v)
		}
	}
	return b.Plotter.BoxPlot(fmt.Sprintf("%s vs %s", name, b.Target), []string{"0", "1"}, groups)
}

func sample(c eda.Column, n int) []string {
	if n > c.Len() {
		n = c.Len()
	}
	out := make([]string, n)
	for i := range out {
		out[i] = c.Format(i)
	}
	return out
}
