package impute

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wdm0006/edachain/pkg/eda"
)

// Constant fills the missing cells of one column with a fixed value. Value
// may be given in the column's Go type or as text, which is parsed per
// column kind (RFC 3339 for time columns).
type Constant struct {
	Column string
	Value  any
	Logger *slog.Logger
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	col, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	nulls := eda.NullCount(col)
	switch c := col.(type) {
	case *eda.FloatColumn, *eda.IntColumn:
		v, err := t.number()
		if err != nil {
			return nil, err
		}
		if err := fillNumeric(f, c, v); err != nil {
			return nil, err
		}
	case *eda.StringColumn:
		v, ok := t.Value.(string)
		if !ok {
			return nil, t.mismatch("string")
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.BoolColumn:
		var v bool
		switch x := t.Value.(type) {
		case bool:
			v = x
		case string:
			if v, err = strconv.ParseBool(strings.ToLower(strings.TrimSpace(x))); err != nil {
				return nil, t.mismatch("bool")
			}
		default:
			return nil, t.mismatch("bool")
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.TimeColumn:
		var v time.Time
		switch x := t.Value.(type) {
		case time.Time:
			v = x
		case string:
			if v, err = time.Parse(time.RFC3339, strings.TrimSpace(x)); err != nil {
				return nil, t.mismatch("time")
			}
		default:
			return nil, t.mismatch("time")
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	}
	if t.Logger != nil && nulls > 0 {
		t.Logger.InfoContext(ctx, "imputed column", "column", t.Column, "filled", nulls, "method", t.Name())
	}
	return f, nil
}

func (t *Constant) number() (float64, error) {
	switch v := t.Value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, t.mismatch("numeric")
		}
		return x, nil
	}
	return 0, t.mismatch("numeric")
}

func (t *Constant) mismatch(kind string) error {
	return fmt.Errorf("impute_constant: %T value %v for %s column %s", t.Value, t.Value, kind, t.Column)
}

// Constants returns one Constant stage per entry of values, ordered by
// column name.
func Constants(values map[string]string, logger *slog.Logger) []eda.Stage {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]eda.Stage, 0, len(names))
	for _, name := range names {
		out = append(out, &Constant{Column: name, Value: values[name], Logger: logger})
	}
	return out
}
