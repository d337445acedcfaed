package analysis

import (
	"context"
	"log/slog"

	"github.com/wdm0006/edachain/pkg/eda"
	"github.com/wdm0006/edachain/pkg/profile"
)

// Summary logs the shape, column kinds, descriptive statistics and missing
// counts of the table.
type Summary struct {
	Logger *slog.Logger
}

func (s *Summary) Name() string { return "understand_dataset" }

func (s *Summary) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := loggerOr(s.Logger)
	logger.InfoContext(ctx, "understanding the dataset", "rows", f.Rows(), "columns", f.Cols())

	for _, col := range f.Columns() {
		logger.InfoContext(ctx, "feature", "column", col.Name(), "kind", col.Kind().String(), "non_null", col.Len()-eda.NullCount(col))
	}
	profiles := profile.Describe(f)
	for _, p := range profiles {
		logger.InfoContext(ctx, "summary statistics", "column", p.Name, "stats", p)
	}
	for _, p := range profiles {
		logger.InfoContext(ctx, "missing values", "column", p.Name, "missing", p.Nulls())
	}
	return f, nil
}
