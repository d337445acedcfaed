package impute

import (
	"context"
	"sort"

	"github.com/wdm0006/edachain/pkg/eda"
)

// Median fills missing cells of a numeric column with the median of its
// observed values; even counts average the two middle values.
type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	col, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	vals := eda.ToNumeric(col).Values()
	if len(vals) == 0 {
		return f, nil
	}
	if err := fillNumeric(f, col, median(vals)); err != nil {
		return nil, err
	}
	return f, nil
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
