package impute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wdm0006/edachain/pkg/eda"
)

// ErrUnknownStrategy is returned for a strategy other than mean or median.
var ErrUnknownStrategy = errors.New("unknown imputation strategy")

type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMedian Strategy = "median"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMean, StrategyMedian:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Missing fills every column that has at least one missing value. Text and
// bool columns take their mode; numeric columns take the mean or median
// chosen by Strategy. Columns with no observed values and time columns are
// left as they are.
type Missing struct {
	Strategy Strategy
	Logger   *slog.Logger
}

func NewMissing(strategy string, logger *slog.Logger) (*Missing, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	return &Missing{Strategy: s, Logger: logger}, nil
}

func (m *Missing) Name() string { return "handle_missing_values" }

func (m *Missing) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := ParseStrategy(string(m.Strategy)); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "handling missing values", "strategy", string(m.Strategy))

	for _, name := range f.ColumnNames() {
		col, _ := f.ColumnByName(name)
		nulls := eda.NullCount(col)
		if nulls == 0 {
			continue
		}
		if nulls == col.Len() {
			logger.WarnContext(ctx, "column has no observed values, left missing", "column", name)
			continue
		}
		var step eda.Stage
		switch k := col.Kind(); {
		case eda.IsCategorical(k):
			step = &Mode{Column: name}
		case eda.IsNumeric(k) && m.Strategy == StrategyMean:
			step = &Mean{Column: name}
		case eda.IsNumeric(k):
			step = &Median{Column: name}
		default:
			logger.DebugContext(ctx, "skipping column", "column", name, "kind", k.String())
			continue
		}
		if _, err := step.Process(ctx, f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		logger.InfoContext(ctx, "imputed column", "column", name, "filled", nulls, "method", step.Name())
	}
	return f, nil
}
