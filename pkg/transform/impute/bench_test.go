package impute

import (
	"context"
	"testing"

	"github.com/wdm0006/edachain/pkg/eda"
)

func makeLargeFloatFrame(n int) *eda.Frame {
	s := eda.Schema{Columns: []eda.ColumnSchema{{Name: "x", Type: eda.KindFloat, Nullable: true}}}
	f := eda.NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*eda.FloatColumn)
	for i := 0; i < n; i += 2 {
		c.Set(i, float64(i%10))
	}
	return f
}

func BenchmarkImputeMean(b *testing.B) {
	base := makeLargeFloatFrame(10000)
	for n := 0; n < b.N; n++ {
		f := base.Clone()
		if _, err := (&Mean{Column: "x"}).Process(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMissingMedian(b *testing.B) {
	base := makeLargeFloatFrame(10000)
	m := &Missing{Strategy: StrategyMedian}
	for n := 0; n < b.N; n++ {
		if _, err := m.Process(context.Background(), base.Clone()); err != nil {
			b.Fatal(err)
		}
	}
}
