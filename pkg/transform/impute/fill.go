package impute

import (
	"fmt"
	"math"

	"github.com/wdm0006/edachain/pkg/eda"
)

func lookup(f *eda.Frame, name string) (eda.Column, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", eda.ErrMissingColumn, name)
	}
	return col, nil
}

// fillNumeric writes v into every missing cell of col. An Int column whose
// fill value has a fractional part is promoted to Float first so the filled
// cells hold v exactly.
func fillNumeric(f *eda.Frame, col eda.Column, v float64) error {
	switch c := col.(type) {
	case *eda.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
	case *eda.IntColumn:
		if v == math.Trunc(v) {
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					c.Set(i, int64(v))
				}
			}
			return nil
		}
		fc := eda.ToNumeric(c)
		for i := 0; i < fc.Len(); i++ {
			if fc.IsNull(i) {
				fc.Set(i, v)
			}
		}
		return f.ReplaceColumn(fc)
	default:
		return fmt.Errorf("column %s is %s, not numeric", col.Name(), col.Kind())
	}
	return nil
}
