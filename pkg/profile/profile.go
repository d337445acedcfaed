// Package profile computes per-column descriptive statistics.
package profile

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/edachain/pkg/eda"
)

// NumStats describes a numeric column. Statistics of a column without
// observed values are NaN.
type NumStats struct {
	Count int
	Nulls int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// CatStats describes a text, bool or time column. Top is the most frequent
// value; ties go to the value seen first.
type CatStats struct {
	Count  int
	Nulls  int
	Unique int
	Top    string
	Freq   int
}

type ColumnProfile struct {
	Name string
	Kind eda.Kind
	Num  *NumStats
	Cat  *CatStats
}

// Nulls returns the number of missing cells regardless of kind.
func (cp ColumnProfile) Nulls() int {
	if cp.Num != nil {
		return cp.Num.Nulls
	}
	return cp.Cat.Nulls
}

func (cp ColumnProfile) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", cp.Kind.String())}
	if n := cp.Num; n != nil {
		attrs = append(attrs,
			slog.Int("count", n.Count), slog.Int("missing", n.Nulls),
			slog.Float64("mean", n.Mean), slog.Float64("std", n.Std),
			slog.Float64("min", n.Min), slog.Float64("25%", n.Q25),
			slog.Float64("50%", n.Q50), slog.Float64("75%", n.Q75),
			slog.Float64("max", n.Max))
		return slog.GroupValue(attrs...)
	}
	c := cp.Cat
	attrs = append(attrs,
		slog.Int("count", c.Count), slog.Int("missing", c.Nulls),
		slog.Int("unique", c.Unique), slog.String("top", c.Top), slog.Int("freq", c.Freq))
	return slog.GroupValue(attrs...)
}

type accum struct {
	vals  []float64
	freqs map[string]int
	order []string
	nulls int
}

// Collector accumulates column values across one or more frames sharing a
// schema and produces profiles on demand.
type Collector struct {
	schema eda.Schema
	acc    []*accum
	index  map[string]int
}

func NewCollector(schema eda.Schema) *Collector {
	c := &Collector{schema: schema, index: make(map[string]int)}
	c.acc = make([]*accum, len(schema.Columns))
	for i, cs := range schema.Columns {
		c.acc[i] = &accum{freqs: map[string]int{}}
		c.index[cs.Name] = i
	}
	return c
}

func (c *Collector) ConsumeFrame(f *eda.Frame) {
	for _, col := range f.Columns() {
		idx, ok := c.index[col.Name()]
		if !ok {
			continue
		}
		a := c.acc[idx]
		numeric := eda.IsNumeric(col.Kind())
		var nums *eda.FloatColumn
		if numeric {
			nums = eda.ToNumeric(col)
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				a.nulls++
				continue
			}
			if numeric {
				v, _ := nums.Get(i)
				a.vals = append(a.vals, v)
				continue
			}
			k := col.Format(i)
			if _, seen := a.freqs[k]; !seen {
				a.order = append(a.order, k)
			}
			a.freqs[k]++
		}
	}
}

// Columns returns one profile per schema column, in schema order.
func (c *Collector) Columns() []ColumnProfile {
	out := make([]ColumnProfile, len(c.schema.Columns))
	for i, cs := range c.schema.Columns {
		a := c.acc[i]
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		if eda.IsNumeric(cs.Type) {
			cp.Num = numStats(a)
		} else {
			cp.Cat = catStats(a)
		}
		out[i] = cp
	}
	return out
}

// Describe profiles a single frame.
func Describe(f *eda.Frame) []ColumnProfile {
	c := NewCollector(f.Schema())
	c.ConsumeFrame(f)
	return c.Columns()
}

func numStats(a *accum) *NumStats {
	nan := math.NaN()
	s := &NumStats{Count: len(a.vals), Nulls: a.nulls, Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	if len(a.vals) == 0 {
		return s
	}
	sorted := append([]float64(nil), a.vals...)
	sort.Float64s(sorted)
	s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	s.Q50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	s.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return s
}

func catStats(a *accum) *CatStats {
	s := &CatStats{Nulls: a.nulls, Unique: len(a.freqs)}
	for _, k := range a.order {
		s.Count += a.freqs[k]
		if a.freqs[k] > s.Freq {
			s.Top, s.Freq = k, a.freqs[k]
		}
	}
	return s
}
