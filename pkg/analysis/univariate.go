package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/eda"
)

const DefaultBins = 20

// Univariate draws one histogram per numeric column.
type Univariate struct {
	Plotter chart.Plotter
	Bins    int
	Logger  *slog.Logger
}

func (u *Univariate) Name() string { return "univariate_analysis" }

func (u *Univariate) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := loggerOr(u.Logger)
	bins := u.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	logger.InfoContext(ctx, "performing univariate analysis", "bins", bins)
	for _, col := range f.Columns() {
		if !eda.IsNumeric(col.Kind()) {
			logger.DebugContext(ctx, "skipping non-numeric column", "column", col.Name(), "kind", col.Kind().String())
			continue
		}
		vals := eda.ToNumeric(col).Values()
		if len(vals) == 0 {
			logger.WarnContext(ctx, "column has no observed values, no histogram", "column", col.Name())
			continue
		}
		if err := u.Plotter.Histogram(col.Name(), vals, bins); err != nil {
			return nil, fmt.Errorf("histogram %s: %w", col.Name(), err)
		}
	}
	return f, nil
}
