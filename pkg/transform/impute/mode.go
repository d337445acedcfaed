package impute

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wdm0006/edachain/pkg/eda"
)

// Mode fills missing cells with the most frequent observed value. Ties go to
// the value that appears first in row order.
type Mode struct{ Column string }

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	col, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	row, ok := modeRow(col)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *eda.StringColumn:
		v, _ := c.Get(row)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.BoolColumn:
		v, _ := c.Get(row)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.IntColumn:
		v, _ := c.Get(row)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.FloatColumn:
		v, _ := c.Get(row)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	default:
		return nil, fmt.Errorf("impute_mode: unsupported column kind %s", col.Kind())
	}
	return f, nil
}

// modeRow returns the row holding the first occurrence of the modal value.
func modeRow(col eda.Column) (int, bool) {
	counts := map[string]int{}
	first := map[string]int{}
	var order []string
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		k := modeKey(col, i)
		if _, seen := first[k]; !seen {
			first[k] = i
			order = append(order, k)
		}
		counts[k]++
	}
	if len(order) == 0 {
		return 0, false
	}
	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return first[best], true
}

func modeKey(col eda.Column, i int) string {
	if fc, ok := col.(*eda.FloatColumn); ok {
		v, _ := fc.Get(i)
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return col.Format(i)
}
