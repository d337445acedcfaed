package impute

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/edachain/pkg/eda"
)

// Mean fills missing cells of a numeric column with the mean of its observed
// values. A column with no observed values is left as is.
type Mean struct{ Column string }

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	col, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	vals := eda.ToNumeric(col).Values()
	if len(vals) == 0 {
		return f, nil
	}
	if err := fillNumeric(f, col, stat.Mean(vals, nil)); err != nil {
		return nil, err
	}
	return f, nil
}
