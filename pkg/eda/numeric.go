package eda

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsNumeric reports whether columns of kind k hold numbers.
func IsNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

// IsCategorical reports whether columns of kind k hold labels rather than
// quantities. Missing labels are filled with the mode.
func IsCategorical(k Kind) bool { return k == KindString || k == KindBool }

// ToNumeric returns a float copy of c. Values that cannot be read as numbers
// become missing; it never fails.
//
// Bools map to 0/1 and times to Unix seconds.
func ToNumeric(c Column) *FloatColumn {
	out := NewFloatColumn(c.Name(), c.Len())
	for i := 0; i < c.Len(); i++ {
		out.SetNull(i)
	}
	switch col := c.(type) {
	case *FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok && !math.IsNaN(v) {
				out.Set(i, v)
			}
		}
	case *IntColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				out.Set(i, float64(v))
			}
		}
	case *BoolColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				if v {
					out.Set(i, 1)
				} else {
					out.Set(i, 0)
				}
			}
		}
	case *StringColumn:
		for i := 0; i < col.Len(); i++ {
			v, ok := col.Get(i)
			if !ok {
				continue
			}
			if x, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(x) {
				out.Set(i, x)
			}
		}
	case *TimeColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				out.Set(i, float64(v.UnixNano())/1e9)
			}
		}
	}
	return out
}

// CoerceNumeric converts the named column to numbers in place. Int and Float
// columns are left as they are.
func (f *Frame) CoerceNumeric(name string) error {
	c, ok := f.ColumnByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	if IsNumeric(c.Kind()) {
		return nil
	}
	return f.ReplaceColumn(ToNumeric(c))
}

// Values returns the non-missing values of c in row order.
func (c *FloatColumn) Values() []float64 {
	out := make([]float64, 0, len(c.data))
	for i, v := range c.data {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// Distinct counts the distinct non-missing values of c.
func Distinct(c Column) int {
	seen := make(map[string]struct{})
	fc, isFloat := c.(*FloatColumn)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		if isFloat {
			v, _ := fc.Get(i)
			seen[strconv.FormatFloat(v, 'g', -1, 64)] = struct{}{}
			continue
		}
		seen[c.Format(i)] = struct{}{}
	}
	return len(seen)
}
